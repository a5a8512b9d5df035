package action

import (
	"errors"
	"testing"

	"github.com/amend-dev/amend/keypath"
	"github.com/amend-dev/amend/value"
)

// mustApply applies an update and fails the test on error.
func mustApply(t *testing.T, ctx *value.Value, u Update) *value.Value {
	t.Helper()
	out, err := Apply(ctx, u)
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	return out
}

// TestApply tests the literal/transform evaluation rule.
func TestApply(t *testing.T) {
	t.Run("literal replaces the context verbatim", func(t *testing.T) {
		out := mustApply(t, value.New("before"), Lit("after"))
		if !value.Equal(out, value.New("after")) {
			t.Errorf("got %s, want %q", out, "after")
		}
	})

	t.Run("literal may be a container", func(t *testing.T) {
		out := mustApply(t, value.New(1), Lit(map[string]any{"a": 1}))
		if out.Kind() != value.KindRecord {
			t.Errorf("Kind = %s, want record", out.Kind())
		}
	})

	t.Run("transform receives the context", func(t *testing.T) {
		double := Func(func(ctx *value.Value) *value.Value {
			n, _ := ctx.Interface().(int64)
			return value.New(n * 2)
		})
		out := mustApply(t, value.New(21), double)
		if !value.Equal(out, value.New(42)) {
			t.Errorf("got %s, want 42", out)
		}
	})

	t.Run("zero update is the literal nil", func(t *testing.T) {
		out := mustApply(t, value.New("anything"), Update{})
		if out.Interface() != nil {
			t.Errorf("got %s, want nil", out)
		}
	})
}

// TestReplace tests full context replacement.
func TestReplace(t *testing.T) {
	t.Run("replaces independent of context shape", func(t *testing.T) {
		for _, ctx := range []*value.Value{
			value.New(map[string]any{"a": 1}),
			value.New([]any{1, 2, 3}),
			value.New("scalar"),
		} {
			out := mustApply(t, ctx, Replace(Lit("x")))
			if !value.Equal(out, value.New("x")) {
				t.Errorf("context %s: got %s, want %q", ctx, out, "x")
			}
		}
	})

	t.Run("may change a value's kind", func(t *testing.T) {
		out := mustApply(t, value.New([]any{1, 2}), Replace(Lit("flat")))
		if out.Kind() != value.KindScalar {
			t.Errorf("Kind = %s, want scalar", out.Kind())
		}
	})

	t.Run("evaluates a nested transform", func(t *testing.T) {
		out := mustApply(t, value.New(3), Replace(Func(func(ctx *value.Value) *value.Value {
			n, _ := ctx.Interface().(int64)
			return value.New(n + 1)
		})))
		if !value.Equal(out, value.New(4)) {
			t.Errorf("got %s, want 4", out)
		}
	})
}

// TestMerge tests record overlay semantics.
func TestMerge(t *testing.T) {
	t.Run("update wins on collisions, other keys preserved", func(t *testing.T) {
		ctx := value.New(map[string]any{"text": "hello", "count": 1})
		out := mustApply(t, ctx, Merge(Lit(map[string]any{"text": "goodbye"})))
		want := value.New(map[string]any{"text": "goodbye", "count": 1})
		if !value.Equal(out, want) {
			t.Errorf("got %s, want %s", out, want)
		}
	})

	t.Run("preserved keys keep their identity", func(t *testing.T) {
		ctx := value.New(map[string]any{"keep": map[string]any{"deep": true}, "swap": 1})
		out := mustApply(t, ctx, Merge(Lit(map[string]any{"swap": 2})))

		before, _ := ctx.AsRecord()
		after, _ := out.AsRecord()
		kept, _ := before.Find("keep")
		got, _ := after.Find("keep")
		if kept != got {
			t.Error("untouched field should be shared by reference")
		}
	})

	t.Run("non-record context is a shape error", func(t *testing.T) {
		_, err := Apply(value.New([]any{1}), Merge(Lit(map[string]any{})))
		var shapeErr *ShapeError
		if !errors.As(err, &shapeErr) {
			t.Fatalf("error = %v, want ShapeError", err)
		}
		if shapeErr.Op != "merge" || shapeErr.Got != value.KindSequence {
			t.Errorf("ShapeError = %v, want merge/sequence", shapeErr)
		}
	})

	t.Run("non-record update is a shape error", func(t *testing.T) {
		_, err := Apply(value.New(map[string]any{}), Merge(Lit("not a record")))
		var shapeErr *ShapeError
		if !errors.As(err, &shapeErr) {
			t.Fatalf("error = %v, want ShapeError", err)
		}
	})
}

// TestConcat tests sequence append semantics.
func TestConcat(t *testing.T) {
	t.Run("appends in order without deduplication", func(t *testing.T) {
		ctx := value.New([]any{1, 2, 2})
		out := mustApply(t, ctx, Concat(Lit([]any{2, 3})))
		want := value.New([]any{1, 2, 2, 2, 3})
		if !value.Equal(out, want) {
			t.Errorf("got %s, want %s", out, want)
		}
	})

	t.Run("update may derive from the context", func(t *testing.T) {
		mirror := Func(func(ctx *value.Value) *value.Value { return ctx })
		ctx := value.New([]any{1, 2})
		out := mustApply(t, ctx, Concat(mirror))
		want := value.New([]any{1, 2, 1, 2})
		if !value.Equal(out, want) {
			t.Errorf("got %s, want %s", out, want)
		}
	})

	t.Run("non-sequence context is a shape error", func(t *testing.T) {
		_, err := Apply(value.New("nope"), Concat(Lit([]any{})))
		var shapeErr *ShapeError
		if !errors.As(err, &shapeErr) {
			t.Fatalf("error = %v, want ShapeError", err)
		}
	})
}

// TestSetIn tests single-child updates and their locality.
func TestSetIn(t *testing.T) {
	t.Run("updates one sequence position", func(t *testing.T) {
		ctx := value.New([]any{10, 9, 8, 7})
		out := mustApply(t, ctx, SetIn(keypath.Index(1), Lit(999)))
		want := value.New([]any{10, 999, 8, 7})
		if !value.Equal(out, want) {
			t.Errorf("got %s, want %s", out, want)
		}
	})

	t.Run("unselected record fields keep their identity", func(t *testing.T) {
		ctx := value.New(map[string]any{
			"target": 1,
			"other":  map[string]any{"deep": []any{1, 2, 3}},
		})
		out := mustApply(t, ctx, SetIn(keypath.Field("target"), Lit(2)))

		before, _ := ctx.AsRecord()
		after, _ := out.AsRecord()
		was, _ := before.Find("other")
		is, _ := after.Find("other")
		if was != is {
			t.Error("unselected field should be shared by reference")
		}
	})

	t.Run("missing record key is created with an absent baseline", func(t *testing.T) {
		ctx := value.New(map[string]any{"a": 1})
		sawAbsent := false
		probe := Func(func(old *value.Value) *value.Value {
			sawAbsent = old.IsAbsent()
			return value.New("new")
		})
		out := mustApply(t, ctx, SetIn(keypath.Field("b"), probe))
		if !sawAbsent {
			t.Error("baseline for a new key should be Absent")
		}
		want := value.New(map[string]any{"a": 1, "b": "new"})
		if !value.Equal(out, want) {
			t.Errorf("got %s, want %s", out, want)
		}
	})

	t.Run("out-of-range index extends the sequence with Absent", func(t *testing.T) {
		ctx := value.New([]any{1})
		out := mustApply(t, ctx, SetIn(keypath.Index(3), Lit("x")))
		seq, _ := out.AsSequence()
		if seq.Len() != 4 {
			t.Fatalf("Len = %d, want 4", seq.Len())
		}
		if !seq.At(1).IsAbsent() || !seq.At(2).IsAbsent() {
			t.Error("gap slots should be Absent")
		}
		if !value.Equal(seq.At(3), value.New("x")) {
			t.Errorf("At(3) = %s, want %q", seq.At(3), "x")
		}
	})

	t.Run("non-numeric key on a sequence is an index error", func(t *testing.T) {
		_, err := Apply(value.New([]any{1}), SetIn(keypath.Field("name"), Lit(0)))
		var idxErr *IndexError
		if !errors.As(err, &idxErr) {
			t.Fatalf("error = %v, want IndexError", err)
		}
	})

	t.Run("negative index is an index error", func(t *testing.T) {
		_, err := Apply(value.New([]any{1}), SetIn(keypath.Index(-1), Lit(0)))
		var idxErr *IndexError
		if !errors.As(err, &idxErr) {
			t.Fatalf("error = %v, want IndexError", err)
		}
	})

	t.Run("scalar context is a shape error", func(t *testing.T) {
		_, err := Apply(value.New("flat"), SetIn(keypath.Field("a"), Lit(0)))
		var shapeErr *ShapeError
		if !errors.As(err, &shapeErr) {
			t.Fatalf("error = %v, want ShapeError", err)
		}
	})
}

// TestSelect tests path navigation.
func TestSelect(t *testing.T) {
	t.Run("deep replace", func(t *testing.T) {
		ctx := value.New(map[string]any{"a": map[string]any{"b": map[string]any{"c": true}}})
		out := mustApply(t, ctx, Select("a.b.c", Replace(Lit(false))))
		want := value.New(map[string]any{"a": map[string]any{"b": map[string]any{"c": false}}})
		if !value.Equal(out, want) {
			t.Errorf("got %s, want %s", out, want)
		}
	})

	t.Run("string and key forms are equivalent", func(t *testing.T) {
		ctx := value.New(map[string]any{"a": map[string]any{"b": map[string]any{"c": 1}}})
		byString := mustApply(t, ctx, Select("a.b.c", Lit(2)))
		byKeys := mustApply(t, ctx, SelectKeys([]keypath.Key{
			keypath.Field("a"), keypath.Field("b"), keypath.Field("c"),
		}, Lit(2)))
		if !value.Equal(byString, byKeys) {
			t.Errorf("Select = %s, SelectKeys = %s", byString, byKeys)
		}
	})

	t.Run("empty key list applies at the context", func(t *testing.T) {
		out := mustApply(t, value.New(1), SelectKeys(nil, Lit(2)))
		if !value.Equal(out, value.New(2)) {
			t.Errorf("got %s, want 2", out)
		}
	})

	t.Run("numeric segments address sequence positions", func(t *testing.T) {
		ctx := value.New(map[string]any{"items": []any{"a", "b"}})
		out := mustApply(t, ctx, Select("items.1", Lit("B")))
		want := value.New(map[string]any{"items": []any{"a", "B"}})
		if !value.Equal(out, want) {
			t.Errorf("got %s, want %s", out, want)
		}
	})

	t.Run("siblings along the path keep their identity", func(t *testing.T) {
		ctx := value.New(map[string]any{
			"a":       map[string]any{"b": 1},
			"sibling": []any{1, 2, 3},
		})
		out := mustApply(t, ctx, Select("a.b", Lit(2)))

		before, _ := ctx.AsRecord()
		after, _ := out.AsRecord()
		was, _ := before.Find("sibling")
		is, _ := after.Find("sibling")
		if was != is {
			t.Error("sibling outside the spine should be shared by reference")
		}
	})

	t.Run("malformed path fails at apply time", func(t *testing.T) {
		u := Select("a..b", Lit(1))
		_, err := Apply(value.New(map[string]any{}), u)
		var pathErr *PathError
		if !errors.As(err, &pathErr) {
			t.Fatalf("error = %v, want PathError", err)
		}
		if pathErr.Path != "a..b" {
			t.Errorf("PathError.Path = %q, want %q", pathErr.Path, "a..b")
		}
	})
}

// TestSelectAll tests ordered multi-path updates.
func TestSelectAll(t *testing.T) {
	t.Run("applies entries in order", func(t *testing.T) {
		ctx := value.New(map[string]any{"a": 1, "b": 2})
		out := mustApply(t, ctx, SelectAll([]PathUpdate{
			{Path: "a", Update: Lit(10)},
			{Path: "b", Update: Lit(20)},
		}))
		want := value.New(map[string]any{"a": 10, "b": 20})
		if !value.Equal(out, want) {
			t.Errorf("got %s, want %s", out, want)
		}
	})

	t.Run("later entries observe earlier edits", func(t *testing.T) {
		ctx := value.New(map[string]any{"n": 1})
		copyN := Func(func(old *value.Value) *value.Value { return old })
		out := mustApply(t, ctx, SelectAll([]PathUpdate{
			{Path: "n", Update: Lit(5)},
			{Path: "n", Update: Replace(copyN)},
		}))
		want := value.New(map[string]any{"n": 5})
		if !value.Equal(out, want) {
			t.Errorf("got %s, want %s", out, want)
		}
	})
}

// TestCollect tests data-driven sequencing of updates.
func TestCollect(t *testing.T) {
	intFn := func(fn func(int64) int64) Update {
		return Func(func(ctx *value.Value) *value.Value {
			n, _ := ctx.Interface().(int64)
			return value.New(fn(n))
		})
	}

	t.Run("threads the context through each update", func(t *testing.T) {
		ctx := value.New(map[string]any{"value": 1})
		out := mustApply(t, ctx, Select("value", Collect(
			intFn(func(n int64) int64 { return n * 5 }),
			intFn(func(n int64) int64 { return n - 1 }),
			intFn(func(n int64) int64 { return n * n }),
		)))
		want := value.New(map[string]any{"value": 16})
		if !value.Equal(out, want) {
			t.Errorf("got %s, want %s", out, want)
		}
	})

	t.Run("equals manual nesting", func(t *testing.T) {
		a1 := intFn(func(n int64) int64 { return n + 1 })
		a2 := intFn(func(n int64) int64 { return n * 3 })

		ctx := value.New(7)
		composed := mustApply(t, ctx, Collect(a1, a2))
		nested := mustApply(t, mustApply(t, ctx, a1), a2)
		if !value.Equal(composed, nested) {
			t.Errorf("Collect = %s, nested = %s", composed, nested)
		}
	})

	t.Run("empty collect is the identity", func(t *testing.T) {
		ctx := value.New([]any{1, 2})
		out := mustApply(t, ctx, Collect())
		if !value.Equal(out, ctx) {
			t.Errorf("got %s, want %s", out, ctx)
		}
	})
}

// TestMap tests per-element traversal.
func TestMap(t *testing.T) {
	double := func(v *value.Value, _ int) Update {
		return Func(func(ctx *value.Value) *value.Value {
			n, _ := ctx.Interface().(int64)
			return value.New(n * 2)
		})
	}

	t.Run("transforms every element in place", func(t *testing.T) {
		ctx := value.New([]any{1, 2, 3})
		out := mustApply(t, ctx, Map(double))
		want := value.New([]any{2, 4, 6})
		if !value.Equal(out, want) {
			t.Errorf("got %s, want %s", out, want)
		}
	})

	t.Run("receives indices", func(t *testing.T) {
		ctx := value.New([]any{"a", "b", "c"})
		out := mustApply(t, ctx, Map(func(_ *value.Value, i int) Update {
			return Lit(i)
		}))
		want := value.New([]any{0, 1, 2})
		if !value.Equal(out, want) {
			t.Errorf("got %s, want %s", out, want)
		}
	})

	t.Run("non-sequence context is a shape error", func(t *testing.T) {
		_, err := Apply(value.New(map[string]any{}), Map(double))
		var shapeErr *ShapeError
		if !errors.As(err, &shapeErr) {
			t.Fatalf("error = %v, want ShapeError", err)
		}
	})
}

// TestRange tests windowed updates and their splice semantics.
func TestRange(t *testing.T) {
	double := Map(func(v *value.Value, _ int) Update {
		return Func(func(ctx *value.Value) *value.Value {
			n, _ := ctx.Interface().(int64)
			return value.New(n * 2)
		})
	})

	t.Run("updates only the window", func(t *testing.T) {
		ctx := value.New([]any{1, 2, 3, 4, 5, 6})
		out := mustApply(t, ctx, Range(1, 3, double))
		want := value.New([]any{1, 4, 6, 8, 5, 6})
		if !value.Equal(out, want) {
			t.Errorf("got %s, want %s", out, want)
		}
	})

	t.Run("deletion via an empty replacement", func(t *testing.T) {
		ctx := value.New([]any{1, 2, 99, 100, 3, 4})
		out := mustApply(t, ctx, Range(2, 2, Replace(Lit([]any{}))))
		want := value.New([]any{1, 2, 3, 4})
		if !value.Equal(out, want) {
			t.Errorf("got %s, want %s", out, want)
		}
	})

	t.Run("insertion via a longer replacement", func(t *testing.T) {
		ctx := value.New([]any{1, 4})
		out := mustApply(t, ctx, Range(1, 0, Replace(Lit([]any{2, 3}))))
		want := value.New([]any{1, 2, 3, 4})
		if !value.Equal(out, want) {
			t.Errorf("got %s, want %s", out, want)
		}
	})

	t.Run("equals manual splice", func(t *testing.T) {
		ctx := value.New([]any{1, 2, 3, 4, 5})
		out := mustApply(t, ctx, Range(1, 2, Replace(Lit([]any{"x"}))))
		want := value.New([]any{1, "x", 4, 5})
		if !value.Equal(out, want) {
			t.Errorf("got %s, want %s", out, want)
		}
	})

	t.Run("start beyond the end appends", func(t *testing.T) {
		ctx := value.New([]any{1, 2})
		out := mustApply(t, ctx, Range(10, 5, Replace(Lit([]any{3}))))
		want := value.New([]any{1, 2, 3})
		if !value.Equal(out, want) {
			t.Errorf("got %s, want %s", out, want)
		}
	})

	t.Run("length beyond the end takes the rest", func(t *testing.T) {
		ctx := value.New([]any{1, 2, 3})
		out := mustApply(t, ctx, Range(1, 99, Replace(Lit([]any{}))))
		want := value.New([]any{1})
		if !value.Equal(out, want) {
			t.Errorf("got %s, want %s", out, want)
		}
	})

	t.Run("non-sequence window result is a shape error", func(t *testing.T) {
		_, err := Apply(value.New([]any{1, 2}), Range(0, 1, Replace(Lit("scalar"))))
		var shapeErr *ShapeError
		if !errors.As(err, &shapeErr) {
			t.Fatalf("error = %v, want ShapeError", err)
		}
	})
}

// TestNonMutation verifies the engine never alters its input tree.
func TestNonMutation(t *testing.T) {
	build := func() *value.Value {
		return value.New(map[string]any{
			"a": map[string]any{"b": []any{1, 2, 3}},
			"c": "keep",
		})
	}

	updates := map[string]Update{
		"merge":     Merge(Lit(map[string]any{"c": "changed"})),
		"setIn":     SetIn(keypath.Field("c"), Lit("changed")),
		"select":    Select("a.b.1", Lit(99)),
		"selectAll": SelectAll([]PathUpdate{{Path: "c", Update: Lit("x")}}),
		"collect":   Collect(Select("c", Lit("x")), Select("a.b", Concat(Lit([]any{4})))),
	}

	for name, u := range updates {
		t.Run(name, func(t *testing.T) {
			ctx := build()
			if _, err := Apply(ctx, u); err != nil {
				t.Fatalf("Apply error: %v", err)
			}
			if !value.Equal(ctx, build()) {
				t.Errorf("input mutated: %s", ctx)
			}
		})
	}
}

// TestReuse verifies a composed update can be evaluated repeatedly with
// deterministic results.
func TestReuse(t *testing.T) {
	u := Select("n", Func(func(ctx *value.Value) *value.Value {
		n, _ := ctx.Interface().(int64)
		return value.New(n + 1)
	}))

	for i := 0; i < 3; i++ {
		out := mustApply(t, value.New(map[string]any{"n": 1}), u)
		want := value.New(map[string]any{"n": 2})
		if !value.Equal(out, want) {
			t.Errorf("run %d: got %s, want %s", i, out, want)
		}
	}
}
