// Package prompt runs the interactive question flow. Questions are plain
// values: whether one is asked and whether its answer is accepted are pure
// functions of the answers collected so far.
package prompt

import (
	domainerr "alepc/internal/domain/errors"
)

type Kind int

const (
	Input Kind = iota
	Select
	MultiSelect
	Confirm
)

// Answers maps a question key to a string, []string or bool depending on
// the question kind.
type Answers map[string]any

func (a Answers) String(key string) string {
	s, _ := a[key].(string)
	return s
}

func (a Answers) Strings(key string) []string {
	s, _ := a[key].([]string)
	return s
}

func (a Answers) Bool(key string) (value, ok bool) {
	value, ok = a[key].(bool)
	return value, ok
}

func (a Answers) Has(key string) bool {
	_, ok := a[key]
	return ok
}

type Question struct {
	Key     string
	Kind    Kind
	Message string
	Options []string

	// Default and Hint may look at earlier answers, e.g. to show the value
	// currently on file.
	Default func(Answers) any
	Hint    func(Answers) string
	Suggest func(toComplete string) []string

	When     func(Answers) bool
	Validate func(Answers, any) error
}

func (q Question) applies(a Answers) bool {
	return q.When == nil || q.When(a)
}

// Asker shows one question and returns the raw answer.
type Asker interface {
	Ask(q Question, a Answers) (any, error)
}

// Run asks every applicable question in order. An answer is validated again
// after the asker returns so that non-interactive askers get the same checks.
func Run(asker Asker, qs []Question) (Answers, error) {
	a := Answers{}
	for _, q := range qs {
		if !q.applies(a) {
			continue
		}
		v, err := asker.Ask(q, a)
		if err != nil {
			return a, domainerr.Prompt(err)
		}
		if q.Validate != nil {
			if err := q.Validate(a, v); err != nil {
				return a, domainerr.Validation("%s: %v", q.Key, err)
			}
		}
		a[q.Key] = v
	}
	return a, nil
}
