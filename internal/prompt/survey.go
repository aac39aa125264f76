package prompt

import (
	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/core"
)

// SurveyAsker asks questions on the terminal.
type SurveyAsker struct{}

func (SurveyAsker) Ask(q Question, a Answers) (any, error) {
	var def any
	if q.Default != nil {
		def = q.Default(a)
	}
	msg := q.Message
	if q.Hint != nil {
		if h := q.Hint(a); h != "" {
			msg += " [" + h + "]"
		}
	}

	var opts []survey.AskOpt
	if q.Validate != nil {
		opts = append(opts, survey.WithValidator(func(ans interface{}) error {
			return q.Validate(a, plain(ans))
		}))
	}

	switch q.Kind {
	case Select:
		p := &survey.Select{Message: msg, Options: q.Options}
		if s, ok := def.(string); ok {
			p.Default = s
		}
		var out string
		err := survey.AskOne(p, &out, opts...)
		return out, err
	case MultiSelect:
		p := &survey.MultiSelect{Message: msg, Options: q.Options}
		var out []string
		err := survey.AskOne(p, &out, opts...)
		return out, err
	case Confirm:
		p := &survey.Confirm{Message: msg}
		if b, ok := def.(bool); ok {
			p.Default = b
		}
		var out bool
		err := survey.AskOne(p, &out, opts...)
		return out, err
	default:
		p := &survey.Input{Message: msg, Suggest: q.Suggest}
		if s, ok := def.(string); ok {
			p.Default = s
		}
		var out string
		err := survey.AskOne(p, &out, opts...)
		return out, err
	}
}

// plain converts survey's option answers into the values Run stores.
func plain(ans interface{}) any {
	switch v := ans.(type) {
	case core.OptionAnswer:
		return v.Value
	case []core.OptionAnswer:
		out := make([]string, len(v))
		for i, o := range v {
			out[i] = o.Value
		}
		return out
	}
	return ans
}
