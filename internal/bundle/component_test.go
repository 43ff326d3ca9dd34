package bundle

import (
	"testing"
)

func TestSanitizedName(t *testing.T) {
	cases := []struct {
		display string
		want    string
	}{
		{"My App Two", "My_App_Two"},
		{"Viewer", "Viewer"},
		{"a b c d", "a_b_c_d"},
		{" leading", "_leading"},
		{"no-change_here.1", "no-change_here.1"},
	}
	for _, tc := range cases {
		c := Component{DisplayName: tc.display}
		if got := c.SanitizedName(); got != tc.want {
			t.Errorf("SanitizedName(%q): got %q, want %q", tc.display, got, tc.want)
		}
	}
}

func TestArtifactName(t *testing.T) {
	c := Component{DisplayName: "My Viewer"}
	if got, want := c.ArtifactName(), "My_Viewer-x86_64.AppImage"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestValidateRequiredFields(t *testing.T) {
	valid := Component{Name: "viewer", DisplayName: "My Viewer", Executable: "viewer-bin", Plugin: qtPlugin{}}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid component rejected: %v", err)
	}

	cases := map[string]Component{
		"missing name":         {DisplayName: "X", Executable: "x", Plugin: qtPlugin{}},
		"missing display":      {Name: "x", Executable: "x", Plugin: qtPlugin{}},
		"missing executable":   {Name: "x", DisplayName: "X", Plugin: qtPlugin{}},
		"missing plugin":       {Name: "x", DisplayName: "X", Executable: "x"},
		"whitespace-only name": {Name: "  ", DisplayName: "X", Executable: "x", Plugin: qtPlugin{}},
	}
	for label, c := range cases {
		err := c.Validate()
		if err == nil {
			t.Errorf("%s: expected error", label)
			continue
		}
		if _, ok := err.(*ConfigurationError); !ok {
			t.Errorf("%s: expected ConfigurationError, got %T", label, err)
		}
	}
}
