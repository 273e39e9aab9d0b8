package main

import (
	"errors"
	"reflect"
	"testing"
)

func TestBoundedSlice(t *testing.T) {
	bs := NewBoundedSlice[int](3)
	for i := 1; i <= 5; i++ {
		bs.Add(i)
	}
	if got := bs.Get(); !reflect.DeepEqual(got, []int{3, 4, 5}) {
		t.Errorf("Get() = %v, want [3 4 5]", got)
	}

	bs.Replace([]int{10, 20, 30, 40})
	if got := bs.Get(); !reflect.DeepEqual(got, []int{20, 30, 40}) {
		t.Errorf("Get() after Replace = %v, want [20 30 40]", got)
	}

	bs.Clear()
	if bs.Len() != 0 {
		t.Errorf("Len() after Clear = %d", bs.Len())
	}
}

type closeRecorder struct {
	name  string
	order *[]string
	err   error
}

func (c closeRecorder) Close() error {
	*c.order = append(*c.order, c.name)
	return c.err
}

func TestResourceManagerCleanup(t *testing.T) {
	var order []string
	failure := errors.New("close failed")

	rm := NewResourceManager()
	rm.Register(closeRecorder{"first", &order, failure})
	rm.Register(closeRecorder{"second", &order, nil})

	if err := rm.Cleanup(); !errors.Is(err, failure) {
		t.Errorf("Cleanup() = %v, want %v", err, failure)
	}
	if !reflect.DeepEqual(order, []string{"second", "first"}) {
		t.Errorf("close order = %v, want reverse registration order", order)
	}
	if err := rm.Cleanup(); err != nil {
		t.Errorf("second Cleanup() = %v, want nil", err)
	}
}
