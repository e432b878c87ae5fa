package inert_test

import (
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/broady/inert"
	"github.com/broady/inert/internal/testfixtures"
)

func TestOf_Empty(t *testing.T) {
	v, err := inert.Of[testfixtures.Empty]()
	if err != nil {
		t.Fatalf("Of[Empty]: %v", err)
	}
	if v == nil {
		t.Fatal("Of[Empty] returned nil")
	}
}

func TestOf_EmptyWithoutStub(t *testing.T) {
	type local interface{}
	v, err := inert.From[local](inert.NewRegistry())
	if err != nil {
		t.Fatalf("From[local]: %v", err)
	}
	if v == nil {
		t.Fatal("From[local] returned nil")
	}
}

func TestOf_UnsupportedKind(t *testing.T) {
	check := func(t *testing.T, err error) {
		t.Helper()
		if !errors.Is(err, inert.ErrUnsupportedKind) {
			t.Fatalf("got %v, want ErrUnsupportedKind", err)
		}
		var kindErr *inert.KindError
		if !errors.As(err, &kindErr) {
			t.Fatalf("got %T, want *KindError", err)
		}
	}

	r := inert.NewRegistry()

	t.Run("struct", func(t *testing.T) {
		v, err := inert.From[testfixtures.Point](r)
		check(t, err)
		if v != (testfixtures.Point{}) {
			t.Errorf("got %+v, want zero value", v)
		}
	})
	t.Run("pointer", func(t *testing.T) {
		v, err := inert.From[*testfixtures.Point](r)
		check(t, err)
		if v != nil {
			t.Errorf("got %v, want nil", v)
		}
	})
	t.Run("primitive", func(t *testing.T) {
		_, err := inert.From[int](r)
		check(t, err)
	})

	if r.Len() != 0 {
		t.Errorf("registry cached %d implementations after failed requests", r.Len())
	}
}

func TestOf_PrimitiveDefaults(t *testing.T) {
	v, err := inert.Of[testfixtures.PrimitiveDataType]()
	if err != nil {
		t.Fatal(err)
	}
	if v.Boolean() != false {
		t.Errorf("Boolean() = %v, want false", v.Boolean())
	}
	if !v.DateTime().IsZero() {
		t.Errorf("DateTime() = %v, want zero time", v.DateTime())
	}
	if v.Integer() != 0 {
		t.Errorf("Integer() = %d, want 0", v.Integer())
	}
	if v.Long() != 0 {
		t.Errorf("Long() = %d, want 0", v.Long())
	}
	if v.String() != "" {
		t.Errorf("String() = %q, want empty", v.String())
	}
}

func TestOf_PropertyRoundTrip(t *testing.T) {
	v := inert.Must[testfixtures.PrimitiveDataType]()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	v.SetBoolean(true)
	v.SetDateTime(now)
	v.SetInteger(42)
	v.SetLong(1 << 40)
	v.SetString("hello")

	if !v.Boolean() {
		t.Error("Boolean() = false after SetBoolean(true)")
	}
	if !v.DateTime().Equal(now) {
		t.Errorf("DateTime() = %v, want %v", v.DateTime(), now)
	}
	if v.Integer() != 42 {
		t.Errorf("Integer() = %d, want 42", v.Integer())
	}
	if v.Long() != 1<<40 {
		t.Errorf("Long() = %d, want %d", v.Long(), int64(1<<40))
	}
	if v.String() != "hello" {
		t.Errorf("String() = %q, want hello", v.String())
	}
}

func TestOf_GetterAndSetterOnly(t *testing.T) {
	g := inert.Must[testfixtures.GetterOnly]()
	if g.GetInteger() != 0 {
		t.Errorf("GetInteger() = %d, want 0", g.GetInteger())
	}

	s := inert.Must[testfixtures.SetterOnly]()
	s.SetInteger(7)
}

func TestOf_MethodsReturnZero(t *testing.T) {
	shape := inert.Must[testfixtures.Shape]()
	if got := shape.Area(); got != 0 {
		t.Errorf("Area() = %d, want 0", got)
	}

	sink := inert.Must[testfixtures.Sink]()
	sink.Write(42)

	m := inert.Must[testfixtures.MethodWithArgs]()
	n, err := m.Test(1, 2, true, time.Now(), &testfixtures.Item{})
	if n != 0 || err != nil {
		t.Errorf("Test() = (%d, %v), want (0, nil)", n, err)
	}
	item, ok := m.Lookup(99)
	if item != nil || ok {
		t.Errorf("Lookup() = (%v, %v), want (nil, false)", item, ok)
	}
	m.Printf("%d %s", 1, "two")
}

func TestOf_InstancesIndependent(t *testing.T) {
	a := inert.Must[testfixtures.Base]()
	b := inert.Must[testfixtures.Base]()

	a.SetInteger(5)
	if b.Integer() != 0 {
		t.Errorf("second instance Integer() = %d after setting the first, want 0", b.Integer())
	}
	if a.Integer() != 5 {
		t.Errorf("first instance Integer() = %d, want 5", a.Integer())
	}
}

func TestOf_Derived(t *testing.T) {
	d := inert.Must[testfixtures.Derived]()
	d.SetString("Test")
	d.SetInteger(3)
	if err := d.Test(); err != nil {
		t.Errorf("Test() = %v, want nil", err)
	}
	if d.String() != "Test" || d.Integer() != 3 {
		t.Errorf("got (%q, %d), want (Test, 3)", d.String(), d.Integer())
	}

	var base testfixtures.Base = d
	if base.Integer() != 3 {
		t.Errorf("Base view Integer() = %d, want 3", base.Integer())
	}
}

func TestOf_Diamond(t *testing.T) {
	r := inert.Default()
	impl, err := r.Implementation(reflect.TypeFor[testfixtures.Both]())
	if err != nil {
		t.Fatal(err)
	}

	names := map[string]int{}
	for _, m := range impl.Members() {
		names[m.Name]++
	}
	if names["Name"] != 1 {
		t.Errorf("Name appears %d times, want once: %v", names["Name"], impl.Members())
	}
	if len(impl.Members()) != 3 {
		t.Errorf("got %d members, want 3 (Name, Left, Right): %v", len(impl.Members()), impl.Members())
	}

	both := inert.Must[testfixtures.Both]()
	both.SetName("shared")
	var left testfixtures.Left = both
	var right testfixtures.Right = both
	if left.Name() != "shared" || right.Name() != "shared" {
		t.Errorf("Name differs between diamond paths: %q, %q", left.Name(), right.Name())
	}
}

func TestOf_Generic(t *testing.T) {
	p := inert.Must[testfixtures.Pair[int]]()
	if p.Value() != 0 || p.Label() != "" {
		t.Errorf("got (%d, %q), want zero values", p.Value(), p.Label())
	}
	p.SetValue(9)
	p.SetLabel("nine")
	if p.Value() != 9 || p.Label() != "nine" {
		t.Errorf("got (%d, %q), want (9, nine)", p.Value(), p.Label())
	}

	s := inert.Must[testfixtures.Pair[string]]()
	if s.Value() != "" {
		t.Errorf("Pair[string].Value() = %q, want empty", s.Value())
	}

	r := inert.Default()
	ip, _ := r.Implementation(reflect.TypeFor[testfixtures.Pair[int]]())
	sp, _ := r.Implementation(reflect.TypeFor[testfixtures.Pair[string]]())
	if ip == sp {
		t.Error("Pair[int] and Pair[string] share an implementation")
	}

	box := inert.Must[testfixtures.Box[*testfixtures.Item]]()
	if box.Value() != nil {
		t.Errorf("Box[*Item].Value() = %v, want nil", box.Value())
	}
	want := &testfixtures.Item{ID: 1}
	box.SetValue(want)
	if box.Value() != want {
		t.Errorf("Box[*Item].Value() = %p, want %p", box.Value(), want)
	}

	repo := inert.Must[testfixtures.Repository[int, *testfixtures.Item]]()
	item, err := repo.Find(1)
	if item != nil || err != nil {
		t.Errorf("Find() = (%v, %v), want (nil, nil)", item, err)
	}
	if err := repo.Save(1, want); err != nil {
		t.Errorf("Save() = %v, want nil", err)
	}
	if repo.All() != nil || repo.Len() != 0 {
		t.Errorf("All()/Len() not zero: %v %d", repo.All(), repo.Len())
	}
}

func TestOf_GenericWithoutInstantiation(t *testing.T) {
	_, err := inert.From[testfixtures.Box[string]](inert.NewRegistry())
	if !errors.Is(err, inert.ErrNoStub) {
		t.Fatalf("got %v, want ErrNoStub", err)
	}
	if !errors.Is(err, inert.ErrSynthesis) {
		t.Errorf("got %v, want ErrSynthesis", err)
	}
}

func TestOf_Events(t *testing.T) {
	b := inert.Must[testfixtures.Button]()
	called := false
	b.OnClick(func(x, y int) { called = true })
	cancel := b.OnHover(func() { called = true })
	if cancel == nil {
		t.Fatal("OnHover returned nil canceler")
	}
	cancel()
	if called {
		t.Error("null object invoked a handler")
	}
}

func TestFrom_ConcurrentColdCache(t *testing.T) {
	r := inert.NewRegistry()

	const callers = 64
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	values := make(chan testfixtures.PrimitiveDataType, callers)

	start := make(chan struct{})
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			v, err := inert.From[testfixtures.PrimitiveDataType](r)
			if err != nil {
				errs <- err
				return
			}
			values <- v
		}()
	}
	close(start)
	wg.Wait()
	close(errs)
	close(values)

	for err := range errs {
		t.Errorf("From: %v", err)
	}
	seen := map[testfixtures.PrimitiveDataType]bool{}
	for v := range values {
		if v.Integer() != 0 {
			t.Errorf("fresh instance Integer() = %d", v.Integer())
		}
		v.SetInteger(1)
		if seen[v] {
			t.Error("two callers received the same instance")
		}
		seen[v] = true
	}
	if r.Len() != 1 {
		t.Errorf("registry holds %d implementations, want 1", r.Len())
	}
}

func TestMust_Panics(t *testing.T) {
	defer func() {
		rec := recover()
		if rec == nil {
			t.Fatal("Must[Point] did not panic")
		}
		err, ok := rec.(error)
		if !ok || !errors.Is(err, inert.ErrUnsupportedKind) {
			t.Errorf("panic value %v, want ErrUnsupportedKind", rec)
		}
	}()
	inert.Must[testfixtures.Point]()
}

func TestDynamic_Fixture(t *testing.T) {
	obj, err := inert.Dynamic[testfixtures.Pair[int]]()
	if err != nil {
		t.Fatal(err)
	}
	if err := obj.Set("Value", 4); err != nil {
		t.Fatal(err)
	}
	got, err := obj.Get("Value")
	if err != nil {
		t.Fatal(err)
	}
	if got != 4 {
		t.Errorf("Get(Value) = %v, want 4", got)
	}
}
