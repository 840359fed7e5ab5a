package resolve_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/fakeyudi/cdd/internal/direction"
	"github.com/fakeyudi/cdd/internal/history"
	"github.com/fakeyudi/cdd/internal/pathnorm"
	"github.com/fakeyudi/cdd/internal/resolve"
)

// fakeFS maps paths to "dir" or "file"; everything else does not exist.
type fakeFS map[string]string

func (f fakeFS) IsDir(p string) bool  { return f[p] == "dir" }
func (f fakeFS) IsFile(p string) bool { return f[p] == "file" }

var plain = pathnorm.Normalizer{Separator: '/'}

func newResolver(stack []string, current string, fs fakeFS) *resolve.Resolver {
	return &resolve.Resolver{
		Model: history.Build(stack, current, plain),
		FS:    fs,
		Norm:  plain,
	}
}

func opts(sign string) resolve.Options {
	o := resolve.Options{Limits: resolve.DefaultLimits()}
	if sign != "" {
		_ = o.Direction.Assign(sign)
	}
	return o
}

func scenario() *resolve.Resolver {
	return newResolver([]string{"/a", "/b", "/a", "/c"}, "/c", fakeFS{})
}

func TestClassify(t *testing.T) {
	fs := fakeFS{"/srv": "dir", "/etc/hosts": "file", "--": "dir"}
	cases := []struct {
		spec string
		kind resolve.Kind
		n    int
	}{
		{"/srv", resolve.KindDir, 0},
		{"/etc/hosts", resolve.KindFile, 0},
		{"--", resolve.KindDir, 0},
		{"7", resolve.KindNumeric, 7},
		{"-3", resolve.KindBackwards, 3},
		{"-", resolve.KindBackwards, 1},
		{"---", resolve.KindBackwards, 3},
		{"+0", resolve.KindForwards, 0},
		{"+", resolve.KindForwards, 0},
		{"+++", resolve.KindForwards, 2},
		{",4", resolve.KindCommon, 4},
		{",", resolve.KindCommon, 0},
		{",,", resolve.KindCommon, 1},
		{"-+", resolve.KindPattern, 0},
		{"+-1", resolve.KindPattern, 0},
		{"src", resolve.KindPattern, 0},
		{"", resolve.KindPattern, 0},
	}
	for _, tc := range cases {
		got := resolve.Classify(tc.spec, fs)
		if got.Kind != tc.kind || got.N != tc.n {
			t.Errorf("Classify(%q) = %v/%d, want %v/%d", tc.spec, got.Kind, got.N, tc.kind, tc.n)
		}
	}
}

func TestClassifySaturatesHugeOffsets(t *testing.T) {
	got := resolve.Classify("-99999999999999999999999", fakeFS{})
	if got.Kind != resolve.KindBackwards || got.N <= 0 {
		t.Fatalf("got %+v", got)
	}
	r := scenario()
	_, err := r.Resolve("-99999999999999999999999", opts(""))
	if !errors.Is(err, resolve.ErrNoDirectoryAtOffset) {
		t.Fatalf("expected offset error, got %v", err)
	}
}

func TestResolveScenario(t *testing.T) {
	r := scenario()
	cases := []struct {
		spec string
		sign string
		want string
	}{
		{"-1", direction.Backwards, "/a"},
		{"-2", "", "/b"},
		{"-", direction.Forwards, "/a"},
		{"--", "", "/b"},
		{"+0", direction.Backwards, "/c"},
		{"+", "", "/c"},
		{"++", "", "/a"},
		{"+2", "", "/b"},
		{",", "", "/a"},
		{",1", "", "/b"},
		{",,,", "", "/c"},
		{"1", direction.Backwards, "/a"},
		{"1", direction.Forwards, "/a"},
		{"0", direction.Common, "/a"},
	}
	for _, tc := range cases {
		res, err := r.Resolve(tc.spec, opts(tc.sign))
		if err != nil {
			t.Errorf("Resolve(%q, %q): %v", tc.spec, tc.sign, err)
			continue
		}
		if res.Target != tc.want {
			t.Errorf("Resolve(%q, %q) = %q, want %q", tc.spec, tc.sign, res.Target, tc.want)
		}
	}
}

func TestResolveOffsetErrors(t *testing.T) {
	r := scenario()
	cases := map[string]string{
		"-3":  "No directory at -3",
		"-0":  "No directory at -0",
		"+3":  "No directory at +3",
		",9":  "No directory at ,9",
		"---": "No directory at -3",
	}
	for spec, msg := range cases {
		_, err := r.Resolve(spec, opts(""))
		if !errors.Is(err, resolve.ErrNoDirectoryAtOffset) {
			t.Errorf("Resolve(%q): expected ErrNoDirectoryAtOffset, got %v", spec, err)
			continue
		}
		var oe *resolve.OffsetError
		if !errors.As(err, &oe) || err.Error() != msg {
			t.Errorf("Resolve(%q) error = %q, want %q", spec, err, msg)
		}
	}

	_, err := r.Resolve("0", opts(direction.Backwards))
	if !errors.Is(err, resolve.ErrNoDirectoryAtOffset) {
		t.Errorf("backwards offset 0 should be out of range, got %v", err)
	}
}

func TestResolveNumericNeedsDirection(t *testing.T) {
	_, err := scenario().Resolve("1", opts(""))
	if !errors.Is(err, resolve.ErrDirectionUnset) {
		t.Fatalf("expected ErrDirectionUnset, got %v", err)
	}
}

func TestResolveFilesystemFirst(t *testing.T) {
	fs := fakeFS{"-1": "dir", "/etc/hosts": "file", "/hosts": "file", "../..": "dir"}
	r := newResolver(nil, "/", fs)

	cases := map[string]string{
		"-1":         "-1",
		"/etc/hosts": "/etc",
		"/hosts":     "/",
		"...":        "../..",
	}
	for spec, want := range cases {
		res, err := r.Resolve(spec, opts(""))
		if err != nil {
			t.Errorf("Resolve(%q): %v", spec, err)
			continue
		}
		if res.Target != want {
			t.Errorf("Resolve(%q) = %q, want %q", spec, res.Target, want)
		}
	}
}

func TestResolveEmptyHistory(t *testing.T) {
	r := newResolver(nil, "/home", fakeFS{})
	for _, spec := range []string{"-1", "+", "src", "3"} {
		_, err := r.Resolve(spec, opts(direction.Backwards))
		if !errors.Is(err, resolve.ErrNoHistory) {
			t.Errorf("Resolve(%q): expected ErrNoHistory, got %v", spec, err)
		}
	}
	if resolve.ErrNoHistory.Error() != "No history of directories" {
		t.Errorf("unexpected message %q", resolve.ErrNoHistory)
	}
}

func TestResolvePattern(t *testing.T) {
	r := newResolver([]string{"/home/me/src/cdd", "/var/log", "/home/me/Src/other", "/tmp"}, "/tmp", fakeFS{})

	res, err := r.Resolve("SRC", opts(direction.Backwards))
	if err != nil {
		t.Fatal(err)
	}
	if res.Target != "/home/me/src/cdd" {
		t.Errorf("target = %q", res.Target)
	}
	lines := res.Lines()
	if len(lines) != 1 || lines[0] != " -3: /home/me/Src/other" {
		t.Errorf("alternates = %q", lines)
	}

	res, err = r.Resolve("log$", opts(direction.Forwards))
	if err != nil || res.Target != "/var/log" || len(res.Alternates) != 0 {
		t.Errorf("forwards search: %+v, %v", res, err)
	}
}

func TestResolvePatternErrors(t *testing.T) {
	r := scenario()

	_, err := r.Resolve("zzz", opts(direction.Backwards))
	if !errors.Is(err, resolve.ErrNoPatternMatch) || err.Error() != "Cannot match pattern: 'zzz'" {
		t.Errorf("no match: got %v", err)
	}

	_, err = r.Resolve("a(", opts(direction.Backwards))
	if !errors.Is(err, resolve.ErrInvalidPattern) {
		t.Fatalf("bad pattern: got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "Cannot process pattern: 'a('\n") {
		t.Errorf("bad pattern message %q", err)
	}

	_, err = r.Resolve("a", opts(""))
	if !errors.Is(err, resolve.ErrDirectionUnset) {
		t.Errorf("pattern without direction: got %v", err)
	}
}

func fifteen() []string {
	stack := make([]string, 15)
	for i := range stack {
		stack[i] = fmt.Sprintf("/proj/dir%02d", i+1)
	}
	return stack
}

func TestPatternTruncation(t *testing.T) {
	r := newResolver(fifteen(), "", fakeFS{})
	o := opts(direction.Common)
	o.Limits.Common = 5

	res, err := r.Resolve("dir", o)
	if err != nil {
		t.Fatal(err)
	}
	if res.Target != "/proj/dir01" {
		t.Errorf("target = %q", res.Target)
	}
	if len(res.Alternates) != 5 || !res.Truncated || res.Matched != 15 {
		t.Fatalf("got %d alternates, truncated=%v, matched=%d", len(res.Alternates), res.Truncated, res.Matched)
	}
	lines := res.Lines()
	if len(lines) != 6 {
		t.Fatalf("lines = %q", lines)
	}
	if lines[0] != " ,1: ( 1) /proj/dir02" {
		t.Errorf("first alternate = %q", lines[0])
	}
	if lines[5] != " ... showing top 5 matching of 15" {
		t.Errorf("summary = %q", lines[5])
	}

	o.ShowAll = true
	res, err = r.Resolve("dir", o)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Alternates) != 14 || res.Truncated || len(res.Lines()) != 14 {
		t.Errorf("show all: %d alternates, truncated=%v", len(res.Alternates), res.Truncated)
	}
	if got := res.Lines()[13]; got != ",14: ( 1) /proj/dir15" {
		t.Errorf("last alternate = %q", got)
	}
}

func TestPatternZeroLimitIsUnlimited(t *testing.T) {
	r := newResolver(fifteen(), "", fakeFS{})
	o := opts(direction.Backwards)
	o.Limits.Backwards = 0
	res, err := r.Resolve("proj", o)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Alternates) != 14 || res.Truncated {
		t.Errorf("got %d alternates, truncated=%v", len(res.Alternates), res.Truncated)
	}
}

func TestRowString(t *testing.T) {
	cases := []struct {
		row  resolve.Row
		want string
	}{
		{resolve.Row{Index: -1, Path: "/a"}, " -1: /a"},
		{resolve.Row{Index: 0, Path: "/a"}, "  0: /a"},
		{resolve.Row{Index: -12, Path: "/a"}, "-12: /a"},
		{resolve.Row{Index: 3, Count: 2, Path: "/x", Common: true}, " ,3: ( 2) /x"},
		{resolve.Row{Index: 12, Count: 104, Path: "/x", Common: true}, ",12: (104) /x"},
	}
	for _, tc := range cases {
		if got := tc.row.String(); got != tc.want {
			t.Errorf("%+v: got %q, want %q", tc.row, got, tc.want)
		}
	}
}

func TestHistoryListing(t *testing.T) {
	r := scenario()

	l := r.History(opts(direction.Forwards))
	want := []string{"  0: /c", "  1: /a", "  2: /b"}
	if got := l.Lines(); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("forwards = %q", got)
	}

	o := opts(direction.Common)
	o.Limits.Common = 2
	l = r.History(o)
	want = []string{" ,0: ( 2) /a", " ,1: ( 1) /b", " ... showing top 2 of 3"}
	if got := l.Lines(); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("common = %q", got)
	}

	l = r.History(opts(""))
	if l.Sign != direction.Backwards || len(l.Rows) != 2 || l.Summary() != "" {
		t.Errorf("default listing = %+v", l)
	}
}

func TestHistoryListingEmptyBackwards(t *testing.T) {
	r := newResolver([]string{"/only"}, "/only", fakeFS{})
	got := r.History(opts(direction.Backwards)).Lines()
	if len(got) != 1 || got[0] != "No history of other directories" {
		t.Errorf("got %q", got)
	}
	if got := r.History(opts(direction.Forwards)).Lines(); len(got) != 1 {
		t.Errorf("forwards should still list the current directory, got %q", got)
	}
}

func TestResolveDelete(t *testing.T) {
	r := newResolver([]string{"/a", "/b/", "/c"}, "/c", fakeFS{"/elsewhere": "dir"})

	got, err := r.ResolveDelete("-2", opts(""))
	if err != nil || got != "/b/" {
		t.Errorf("ResolveDelete(-2) = %q, %v", got, err)
	}

	_, err = r.ResolveDelete("/elsewhere", opts(""))
	if !errors.Is(err, resolve.ErrNotFoundForDelete) {
		t.Fatalf("expected ErrNotFoundForDelete, got %v", err)
	}
	if err.Error() != "** Could not delete from history: /elsewhere" {
		t.Errorf("message = %q", err)
	}
}

// Feature: cdd, Property 4: offset bounds
func TestBackwardsOffsetBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		stack := rapid.SliceOfN(rapid.SampledFrom([]string{"/a", "/b", "/c", "/d", "/e"}), 1, 20).Draw(t, "stack")
		current := rapid.SampledFrom([]string{"", "/a", "/z"}).Draw(t, "current")
		r := newResolver(stack, current, fakeFS{})
		size := len(r.Model.Backwards())

		for _, n := range []int{0, size + 1} {
			if _, err := r.GoBackwards(n); !errors.Is(err, resolve.ErrNoDirectoryAtOffset) {
				t.Fatalf("GoBackwards(%d) with %d entries: %v", n, size, err)
			}
		}
		if size == 0 {
			return
		}
		got, err := r.GoBackwards(1)
		if err != nil || got != r.Model.Backwards()[0].Path {
			t.Fatalf("GoBackwards(1) = %q, %v", got, err)
		}
		if got == current {
			t.Fatalf("GoBackwards(1) returned the current directory %q", current)
		}
	})
}

// Feature: cdd, Property 5: alternates never exceed the limit
func TestAlternatesRespectLimit(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 30).Draw(t, "n")
		limit := rapid.IntRange(0, 10).Draw(t, "limit")
		stack := make([]string, n)
		for i := range stack {
			stack[i] = fmt.Sprintf("/x/%d", i)
		}
		r := newResolver(stack, "", fakeFS{})
		o := opts(direction.Forwards)
		o.Limits.Forwards = limit

		res, err := r.Resolve("x", o)
		if err != nil {
			t.Fatal(err)
		}
		want := n - 1
		if limit > 0 && want > limit {
			want = limit
		}
		if len(res.Alternates) != want {
			t.Fatalf("got %d alternates, want %d", len(res.Alternates), want)
		}
		if res.Truncated != (limit > 0 && n-1 > limit) {
			t.Fatalf("truncated = %v for n=%d limit=%d", res.Truncated, n, limit)
		}
	})
}
