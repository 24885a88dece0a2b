package inputval

import "testing"

type sampleInput struct {
	Name     string `validate:"required,max=10" label:"Name"`
	Email    string `validate:"required,email" label:"Email"`
	Password string `validate:"min=6" label:"Password"`
}

func TestValidate_AllRulesPass(t *testing.T) {
	res := Validate(sampleInput{Name: "Ada", Email: "ada@example.com", Password: "hunter22"})
	if res.HasErrors() {
		t.Fatalf("expected no errors, got %q", res.First())
	}
}

func TestValidate_RequiredAndOrder(t *testing.T) {
	res := Validate(sampleInput{Email: "ada@example.com"})
	if !res.HasErrors() {
		t.Fatal("expected a required-field failure")
	}
	if got := res.First(); got != "Name is required." {
		t.Errorf("First() = %q, want the Name required message", got)
	}
}

func TestValidate_MaxAndMin(t *testing.T) {
	res := Validate(sampleInput{
		Name:     "a name that is far too long",
		Email:    "ada@example.com",
		Password: "abc",
	})
	if len(res.All()) != 2 {
		t.Fatalf("expected 2 failures, got %v", res.All())
	}
}

func TestValidate_EmailRule(t *testing.T) {
	res := Validate(sampleInput{Name: "Ada", Email: "not-an-email"})
	if !res.HasErrors() {
		t.Fatal("expected an email failure")
	}
}

func TestValidate_NonStructIgnored(t *testing.T) {
	if Validate(42).HasErrors() {
		t.Error("non-struct input should validate clean")
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "user.name+tag@example.org"}
	invalid := []string{"", "plain", "@missing.local", "a@b", "two words@example.com", "Name <a@b.co>"}
	for _, s := range valid {
		if !IsValidEmail(s) {
			t.Errorf("IsValidEmail(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidEmail(s) {
			t.Errorf("IsValidEmail(%q) = true, want false", s)
		}
	}
}
