package vm

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/zurustar/wl-go/pkg/opcode"
)

// fixtureCase is one end-to-end program with its expected terminal state.
type fixtureCase struct {
	Name     string            `yaml:"name"`
	Program  []string          `yaml:"program"`
	MaxSteps int               `yaml:"maxSteps"`
	State    string            `yaml:"state"`
	PC       *int              `yaml:"pc"`
	Memory   map[string]string `yaml:"memory"`
	Fault    string            `yaml:"fault"`
}

type fixtureFile struct {
	Cases []fixtureCase `yaml:"cases"`
}

func TestPrograms_Fixtures(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "programs.yaml"))
	if err != nil {
		t.Fatalf("failed to read fixtures: %v", err)
	}

	var file fixtureFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		t.Fatalf("failed to parse fixtures: %v", err)
	}
	if len(file.Cases) == 0 {
		t.Fatal("no fixture cases found")
	}

	for _, tc := range file.Cases {
		t.Run(tc.Name, func(t *testing.T) {
			// Fixture programs must terminate; a budget turns an accidental
			// infinite loop into a fault instead of a hung test.
			budget := tc.MaxSteps
			if budget == 0 {
				budget = 1000
			}

			m := New(tc.Program, WithMaxSteps(budget))
			state := m.Run()

			if string(state) != tc.State {
				t.Fatalf("state = %v, want %v (err: %v)", state, tc.State, m.Err())
			}

			pc, mem := m.Snapshot()
			if tc.PC != nil && pc != *tc.PC {
				t.Errorf("pc = %d, want %d", pc, *tc.PC)
			}

			if tc.Memory != nil {
				if len(mem) != len(tc.Memory) {
					t.Errorf("memory has %d variables, want %d", len(mem), len(tc.Memory))
				}
				for name, want := range tc.Memory {
					v, ok := mem[name]
					if !ok {
						t.Errorf("variable %q not found", name)
						continue
					}
					if got := v.String(); got != want {
						t.Errorf("%s = %s, want %s", name, got, want)
					}
				}
			}

			if tc.Fault != "" {
				if got := faultType(m.Err()); got != tc.Fault {
					t.Errorf("fault = %s (%v), want %s", got, m.Err(), tc.Fault)
				}
			}
		})
	}
}

// faultType maps a machine error to the fixture fault label.
func faultType(err error) string {
	if err == nil {
		return ""
	}
	var rerr *RuntimeError
	if errors.As(err, &rerr) {
		return string(rerr.Type)
	}
	var derr *opcode.DecodeError
	if errors.As(err, &derr) {
		return "DECODE"
	}
	return "UNKNOWN"
}
