package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func newTestLogger(verbose, debug bool) (Logger, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return Logger{Verbose: verbose, Debug: debug, Out: &out, Err: &errOut}, &out, &errOut
}

func TestLogger_Levels(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	testCases := []struct {
		name      string
		verbose   bool
		debug     bool
		wantOut   []string
		wantErr   []string
		unwantOut []string
		unwantErr []string
	}{
		{
			name:      "Quiet",
			wantErr:   []string{"[warn] always"},
			unwantOut: []string{"[info]", "[debug]"},
			unwantErr: []string{"[warn] maybe", "[error]"},
		},
		{
			name:      "Verbose",
			verbose:   true,
			wantOut:   []string{"[info] info 1"},
			wantErr:   []string{"[warn] maybe", "[warn] always"},
			unwantOut: []string{"[debug]"},
			unwantErr: []string{"[error]"},
		},
		{
			name:    "Debug",
			debug:   true,
			wantOut: []string{"[info] info 1", "[debug] debug 2"},
			wantErr: []string{"[warn] maybe", "[warn] always", "[error] boom"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l, out, errOut := newTestLogger(tc.verbose, tc.debug)
			l.Infof("info %d", 1)
			l.Debugf("debug %d", 2)
			l.Warnf("maybe")
			l.WarnfAlways("always")
			l.Errorf("boom")

			for _, s := range tc.wantOut {
				if !strings.Contains(out.String(), s) {
					t.Errorf("stdout missing %q: %q", s, out.String())
				}
			}
			for _, s := range tc.wantErr {
				if !strings.Contains(errOut.String(), s) {
					t.Errorf("stderr missing %q: %q", s, errOut.String())
				}
			}
			for _, s := range tc.unwantOut {
				if strings.Contains(out.String(), s) {
					t.Errorf("stdout should not contain %q: %q", s, out.String())
				}
			}
			for _, s := range tc.unwantErr {
				if strings.Contains(errOut.String(), s) {
					t.Errorf("stderr should not contain %q: %q", s, errOut.String())
				}
			}
		})
	}
}

func TestErrorfAndReturn(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	sentinel := errors.New("sentinel")
	l, _, errOut := newTestLogger(false, true)

	err := l.ErrorfAndReturn("loading key: %w", sentinel)
	if !errors.Is(err, sentinel) {
		t.Errorf("returned error should wrap sentinel, got: %v", err)
	}
	if err.Error() != "loading key: sentinel" {
		t.Errorf("unexpected error text: %q", err.Error())
	}
	if !strings.Contains(errOut.String(), "[error] loading key: sentinel") {
		t.Errorf("error not logged: %q", errOut.String())
	}
}
