package predicate

import "testing"

func isEven(n int) bool { return n%2 == 0 }

func TestFunc(t *testing.T) {
	even := Func[int](isEven)
	if !even.IsSatisfiedBy(2) {
		t.Error("Func(isEven)(2) = false, want true")
	}
	if even.IsSatisfiedBy(3) {
		t.Error("Func(isEven)(3) = true, want false")
	}

	var nilFunc Func[int]
	if nilFunc.IsSatisfiedBy(2) {
		t.Error("nil Func should never be satisfied")
	}
}

func TestNoneAndAll(t *testing.T) {
	for _, v := range []int{-1, 0, 1, 42} {
		if None[int]().IsSatisfiedBy(v) {
			t.Errorf("None()(%d) = true", v)
		}
		if !All[int]().IsSatisfiedBy(v) {
			t.Errorf("All()(%d) = false", v)
		}
	}
	if !IsNone(None[int]()) {
		t.Error("IsNone(None()) = false")
	}
	if !IsNone[int](nil) {
		t.Error("IsNone(nil) = false")
	}
	if IsNone(All[int]()) {
		t.Error("IsNone(All()) = true")
	}
}

func TestOr(t *testing.T) {
	one := Func[int](func(n int) bool { return n == 1 })
	two := Func[int](func(n int) bool { return n == 2 })

	tests := []struct {
		name  string
		pred  Predicate[int]
		value int
		want  bool
	}{
		{"empty", Or[int](), 1, false},
		{"only nils", Or[int](nil, None[int]()), 1, false},
		{"first member", Or[int](one, two), 1, true},
		{"second member", Or[int](one, two), 2, true},
		{"no member", Or[int](one, two), 3, false},
		{"nil member ignored", Or[int](nil, two), 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pred.IsSatisfiedBy(tt.value); got != tt.want {
				t.Errorf("IsSatisfiedBy(%d) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestOrCollapses(t *testing.T) {
	if !IsNone(Or[int]()) {
		t.Error("Or() should collapse to None")
	}

	single := Func[int](isEven)
	if _, ok := Or[int](nil, single).(Func[int]); !ok {
		t.Error("Or with one member should return that member")
	}

	or, ok := Or[int](single, All[int]()).(*OrPredicate[int])
	if !ok {
		t.Fatal("Or with two members should return *OrPredicate")
	}
	if len(or.Members()) != 2 {
		t.Errorf("Members() len = %d, want 2", len(or.Members()))
	}
	if got := or.String(); got != "func | all" {
		t.Errorf("String() = %q", got)
	}
}

func TestNot(t *testing.T) {
	odd := Not[int](Func[int](isEven))
	if !odd.IsSatisfiedBy(3) || odd.IsSatisfiedBy(4) {
		t.Error("Not(isEven) should match odd numbers only")
	}
	if !Not[int](nil).IsSatisfiedBy(0) {
		t.Error("Not(nil) should always be satisfied")
	}
	if got := Describe(odd); got != "!func" {
		t.Errorf("Describe(Not) = %q", got)
	}
}
