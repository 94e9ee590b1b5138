package dotenv_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/ardnew/dotenv/dotenv"
)

// noAmbient is an ambient environment with nothing in it.
var noAmbient = dotenv.LookupFunc(func(string) (string, bool) { return "", false })

func writeFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	return path
}

// load runs content through a Loader bound to a fresh store.
func load(
	t *testing.T,
	content string,
	opts ...dotenv.Option,
) (*dotenv.Map, *dotenv.Loader, error) {
	t.Helper()

	store := dotenv.NewMap()
	opts = append([]dotenv.Option{
		dotenv.WithStore(store),
		dotenv.WithAmbient(noAmbient),
	}, opts...)

	l, err := dotenv.New(writeFile(t, content), opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	return store, l, l.Load(context.Background())
}

func TestLoad_Values(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		key     string
		want    dotenv.Value
	}{
		{"integer", "TEST=34", "TEST", dotenv.Integer(34)},
		{"float", "TEST=34.3", "TEST", dotenv.Float(34.3)},
		{"comma_is_string", "TEST=34,3", "TEST", dotenv.String("34,3")},
		{"boolean_true", "TEST=true", "TEST", dotenv.Boolean(true)},
		{"boolean_false", "TEST=false", "TEST", dotenv.Boolean(false)},
		{"string", "TEST=hello world", "TEST", dotenv.String("hello world")},
		{"empty", "TEST=", "TEST", dotenv.String("")},
		{"inline_comment", "TEST=value # comment", "TEST", dotenv.String("value")},
		{"hash_without_space", "TEST=value#nocomment", "TEST", dotenv.String("value#nocomment")},
		{"first_wins", "A=1\nA=2", "A", dotenv.Integer(1)},
		{"quoted", `TEST="quoted value"`, "TEST", dotenv.String("quoted value")},
		{"quoted_number_coerced", `TEST="34"`, "TEST", dotenv.Integer(34)},
		{
			"multi_line",
			"TEST=\"First\nSecond\nThird\"",
			"TEST",
			dotenv.String("First\nSecond\nThird"),
		},
		{
			"multi_line_skips_blank_lines",
			"TEST=\"First\n\nSecond\"",
			"TEST",
			dotenv.String("First\nSecond"),
		},
		{"nested", "NESTED=abc\nTEST=${NESTED}/x", "TEST", dotenv.String("abc/x")},
		{"nested_typed", "PORT=80\nTEST=${PORT}", "TEST", dotenv.Integer(80)},
		{"nested_in_quotes", "A=x\nTEST=\"${A}\ny\"", "TEST", dotenv.String("x\ny")},
		{"crlf", "TEST=34\r\n", "TEST", dotenv.Integer(34)},
		{"leading_space_number", "A= 34", "A", dotenv.Integer(34)},
		{"trailing_space_number", "B=34 ", "B", dotenv.Integer(34)},
		{"padded_string_verbatim", "C= abc", "C", dotenv.String(" abc")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store, _, err := load(t, tt.content)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}

			got, ok := store.Lookup(tt.key)
			if !ok {
				t.Fatalf("%s not stored", tt.key)
			}

			if got != tt.want {
				t.Errorf("%s = %#v, want %#v", tt.key, got, tt.want)
			}
		})
	}
}

func TestLoad_SkipsNonAssignments(t *testing.T) {
	t.Parallel()

	store, _, err := load(t, "# comment\njust words\n#HIDDEN=1\nKEPT=1\n")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if store.Len() != 1 {
		t.Errorf("store has %d entries, want 1", store.Len())
	}

	if _, ok := store.Lookup("HIDDEN"); ok {
		t.Error("commented assignment was stored")
	}
}

func TestLoad_LinesAfterQuoteResume(t *testing.T) {
	t.Parallel()

	store, _, err := load(t, "A=\"x\nB=inside\"\nC=after")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if v, _ := store.Lookup("A"); v != dotenv.String("x\nB=inside") {
		t.Errorf("A = %#v", v)
	}

	if _, ok := store.Lookup("B"); ok {
		t.Error("line consumed by quote was classified again")
	}

	if v, _ := store.Lookup("C"); v != dotenv.String("after") {
		t.Errorf("C = %#v, want after", v)
	}
}

func TestLoad_UnterminatedQuote(t *testing.T) {
	t.Parallel()

	store, _, err := load(t, "BEFORE=1\nTEST=\"unterminated\nAFTER=2")
	if !errors.Is(err, dotenv.ErrUnterminatedQuote) {
		t.Fatalf("Load() error = %v, want ErrUnterminatedQuote", err)
	}

	var e *dotenv.Error
	if errors.As(err, &e) && !slices.Equal(e.Names(), []string{"TEST"}) {
		t.Errorf("Names() = %v, want [TEST]", e.Names())
	}

	if _, ok := store.Lookup("TEST"); ok {
		t.Error("TEST stored despite unterminated quote")
	}

	if _, ok := store.Lookup("BEFORE"); !ok {
		t.Error("assignment before the failure was not kept")
	}
}

func TestLoad_NestedFromAmbient(t *testing.T) {
	t.Parallel()

	ambient := dotenv.LookupFunc(func(name string) (string, bool) {
		if name == "NESTED" {
			return "ambientVal", true
		}

		return "", false
	})

	store, _, err := load(t, "TEST=${NESTED}", dotenv.WithAmbient(ambient))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if v, _ := store.Lookup("TEST"); v != dotenv.String("ambientVal") {
		t.Errorf("TEST = %#v, want ambientVal", v)
	}
}

func TestLoad_NestedFromProcessEnvironment(t *testing.T) {
	t.Setenv("DOTENV_TEST_NESTED", "fromOS")

	store := dotenv.NewMap()

	l, err := dotenv.New(
		writeFile(t, "TEST=${DOTENV_TEST_NESTED}"),
		dotenv.WithStore(store),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := l.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if v, _ := store.Lookup("TEST"); v != dotenv.String("fromOS") {
		t.Errorf("TEST = %#v, want fromOS", v)
	}
}

func TestLoad_NestedNotFound(t *testing.T) {
	t.Parallel()

	store, _, err := load(t, "TEST=${MISSING}")
	if !errors.Is(err, dotenv.ErrNestedVariableNotFound) {
		t.Fatalf("Load() error = %v, want ErrNestedVariableNotFound", err)
	}

	var e *dotenv.Error
	if errors.As(err, &e) && !slices.Equal(e.Names(), []string{"MISSING"}) {
		t.Errorf("Names() = %v, want [MISSING]", e.Names())
	}

	if store.Len() != 0 {
		t.Errorf("store has %d entries, want 0", store.Len())
	}
}

func TestLoad_NestedSeesOnlyEarlierLines(t *testing.T) {
	t.Parallel()

	_, _, err := load(t, "TEST=${LATER}\nLATER=1")
	if !errors.Is(err, dotenv.ErrNestedVariableNotFound) {
		t.Errorf("Load() error = %v, want ErrNestedVariableNotFound", err)
	}
}

func TestLoad_PresetStoreWins(t *testing.T) {
	t.Parallel()

	store := dotenv.NewMap()
	_ = store.Set("A", dotenv.String("preset"))

	l, err := dotenv.New(writeFile(t, "A=file\nB=${A}"),
		dotenv.WithStore(store),
		dotenv.WithAmbient(noAmbient),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := l.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if v, _ := store.Lookup("A"); v != dotenv.String("preset") {
		t.Errorf("A = %#v, want preset", v)
	}

	if v, _ := store.Lookup("B"); v != dotenv.String("preset") {
		t.Errorf("B = %#v, want preset", v)
	}

	var names []string
	for name := range l.Values() {
		names = append(names, name)
	}

	if !slices.Equal(names, []string{"B"}) {
		t.Errorf("Values() names = %v, want [B]", names)
	}
}

func TestLoad_SharedStoreAcrossLoaders(t *testing.T) {
	t.Parallel()

	store := dotenv.NewMap()
	opts := []dotenv.Option{dotenv.WithStore(store), dotenv.WithAmbient(noAmbient)}

	first, _ := dotenv.New(writeFile(t, "A=1\nB=first"), opts...)
	second, _ := dotenv.New(writeFile(t, "B=second\nC=${B}"), opts...)

	for _, l := range []*dotenv.Loader{first, second} {
		if err := l.Load(context.Background()); err != nil {
			t.Fatalf("Load(%s) error = %v", l.Source(), err)
		}
	}

	if v, _ := store.Lookup("C"); v != dotenv.String("first") {
		t.Errorf("C = %#v, want first", v)
	}
}

func TestLoad_StoreWriteFailure(t *testing.T) {
	t.Parallel()

	l := dotenv.NewReader(strings.NewReader("A=1"),
		dotenv.WithStore(failingStore{dotenv.NewMap()}),
		dotenv.WithAmbient(noAmbient),
	)

	err := l.Load(context.Background())
	if !errors.Is(err, dotenv.ErrStoreWrite) {
		t.Errorf("Load() error = %v, want ErrStoreWrite", err)
	}

	if !errors.Is(err, errReadOnly) {
		t.Errorf("Load() error = %v, want wrapped %v", err, errReadOnly)
	}
}

var errReadOnly = errors.New("read only")

type failingStore struct{ *dotenv.Map }

func (failingStore) Set(string, dotenv.Value) error { return errReadOnly }

func TestLoad_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := dotenv.NewMap()
	l := dotenv.NewReader(strings.NewReader("A=1"), dotenv.WithStore(store))

	if err := l.Load(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}

	if store.Len() != 0 {
		t.Error("canceled load wrote to the store")
	}
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tests := []struct {
		name string
		path string
	}{
		{"empty_path", ""},
		{"missing", filepath.Join(dir, "missing.env")},
		{"directory", dir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := dotenv.New(tt.path)
			if !errors.Is(err, dotenv.ErrFileNotReadable) {
				t.Errorf("New(%q) error = %v, want ErrFileNotReadable", tt.path, err)
			}
		})
	}
}

func TestNew_EmptyFileLoadsNothing(t *testing.T) {
	t.Parallel()

	store, _, err := load(t, "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if store.Len() != 0 {
		t.Errorf("store has %d entries, want 0", store.Len())
	}
}

func TestRequired(t *testing.T) {
	t.Parallel()

	store, l, err := load(t, "TEST=false\nOTHER=1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if v, _ := store.Lookup("TEST"); v != dotenv.Boolean(false) {
		t.Fatalf("TEST = %#v, want false", v)
	}

	if err := l.Required(); err != nil {
		t.Errorf("Required() error = %v", err)
	}

	if err := l.Required("TEST", "OTHER"); err != nil {
		t.Errorf("Required(TEST, OTHER) error = %v", err)
	}

	err = l.Required("TESTNOTIN")
	if !errors.Is(err, dotenv.ErrMissingRequiredVariables) {
		t.Fatalf("Required() error = %v, want ErrMissingRequiredVariables", err)
	}

	err = l.Required("TESTNOTIN", "TEST", "TESTNOTIN2", "TESTNOTIN")

	var e *dotenv.Error
	if !errors.As(err, &e) {
		t.Fatalf("Required() error %v is not *Error", err)
	}

	want := []string{"TESTNOTIN", "TESTNOTIN2", "TESTNOTIN"}
	if !slices.Equal(e.Names(), want) {
		t.Errorf("Names() = %v, want %v", e.Names(), want)
	}

	wantMsg := "missing required variables: TESTNOTIN, TESTNOTIN2, TESTNOTIN"
	if err.Error() != wantMsg {
		t.Errorf("Error() = %q, want %q", err.Error(), wantMsg)
	}
}

func TestValues_InFileOrder(t *testing.T) {
	t.Parallel()

	_, l, err := load(t, "Z=1\nA=2\nZ=3\nM=4")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	var names []string
	for name := range l.Values() {
		names = append(names, name)
	}

	if want := []string{"Z", "A", "M"}; !slices.Equal(names, want) {
		t.Errorf("Values() names = %v, want %v", names, want)
	}
}

func TestRequired_Store(t *testing.T) {
	t.Parallel()

	m := dotenv.NewMap()
	_ = m.Set("A", dotenv.Integer(1))

	if err := dotenv.Required(m, "A"); err != nil {
		t.Errorf("Required(A) error = %v", err)
	}

	if err := dotenv.Required(m, "B", "A"); err == nil || err.Error() != "missing required variables: B" {
		t.Errorf("Required(B, A) error = %v", err)
	}
}
