package pkg

import (
	"errors"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestName(t *testing.T) {
	expected := "dotenv"
	if Name != expected {
		t.Errorf("Expected Name to be %q, got %q", expected, Name)
	}
}

func TestVersion(t *testing.T) {
	if Version == "" {
		t.Fatal("Expected Version to be embedded")
	}

	if strings.ContainsAny(Version, " \n\t") {
		t.Errorf("Expected Version to be trimmed, got %q", Version)
	}
}

func TestAuthor(t *testing.T) {
	if !slices.ContainsFunc(Author, func(a AuthorInfo) bool {
		return a.Name == "ardnew" && a.Email == "andrew@ardnew.com"
	}) {
		t.Errorf("Expected Author to contain ardnew, got %v", Author)
	}
}

func TestConfigPath(t *testing.T) {
	got := ConfigPath("config")
	if filepath.Base(got) != "config" {
		t.Errorf("ConfigPath base = %q, want config", filepath.Base(got))
	}

	if filepath.Dir(got) != ConfigDir() {
		t.Errorf("ConfigPath dir = %q, want %q", filepath.Dir(got), ConfigDir())
	}
}

func TestError_WrapPreservesSentinel(t *testing.T) {
	err := ErrCreateDir.Wrap(fs.ErrPermission)

	if !errors.Is(err, ErrCreateDir) {
		t.Error("expected errors.Is to match ErrCreateDir")
	}

	if !errors.Is(err, fs.ErrPermission) {
		t.Error("expected errors.Is to match the wrapped cause")
	}

	if errors.Is(err, ErrNoSource) {
		t.Error("unexpected match for ErrNoSource")
	}

	want := "failed to create directory: permission denied"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestError_Wrapf(t *testing.T) {
	err := ErrCreateDir.Wrapf("mkdir %s", "/x")

	if got, want := err.Error(), "failed to create directory: mkdir /x"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestMakeError_SkipsNil(t *testing.T) {
	if e := MakeError(nil, nil); e != nil {
		t.Errorf("MakeError(nil, nil) = %v, want nil", e)
	}
}
