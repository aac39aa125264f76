package errors

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	var ve ValidationError
	ve.Add("posts_path", "must exist")

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"filesystem", FileSystem(errors.New("denied"), "write post"), 77},
		{"validation", Validation("image missing"), 78},
		{"config parse", ConfigParse(errors.New("bad yaml"), "config.yaml"), 78},
		{"config validation aggregate", ve, 78},
		{"post properties", PostProperties("duplicate key"), 1},
		{"other", Other("nested directory"), 1},
		{"plain", errors.New("boom"), 1},
		{"wrapped filesystem", fmt.Errorf("create: %w", FileSystem(nil, "copy")), 77},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestErrorMessageAndUnwrap(t *testing.T) {
	cause := errors.New("permission denied")
	err := FileSystem(cause, "write %s", "a.md")

	assert.Equal(t, "write a.md: permission denied", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsKind(err, KindFileSystem))
	assert.ErrorIs(t, Validation("x"), ErrInvalid)
	assert.NotErrorIs(t, PostProperties("x"), ErrInvalid)
}

func TestPrint(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	Print(&buf, PostProperties("'title' is a duplicate key in a.md"))
	assert.Equal(t, "PostPropertiesError: 'title' is a duplicate key in a.md\n", buf.String())

	buf.Reset()
	Print(&buf, Prompt(errors.New("interrupt")))
	assert.Empty(t, buf.String())
}
