package memkit_test

import (
	"errors"
	"fmt"

	"github.com/hupe1980/memkit"
	"github.com/hupe1980/memkit/alloc"
)

func ExampleNewValue() {
	arr, err := memkit.NewValue(5, 7)
	if err != nil {
		panic(err)
	}
	defer arr.Free()

	front, _ := arr.Front()
	fmt.Println(arr.Len(), *front)
	// Output: 5 7
}

func ExampleFixedArray_Reset() {
	arr, err := memkit.NewValue(5, 7)
	if err != nil {
		panic(err)
	}
	defer arr.Free()

	if err := arr.Reset(3); err != nil {
		panic(err)
	}

	v, _ := arr.Get(0)
	fmt.Println(arr.Len(), v)

	_, err = arr.Get(3)
	fmt.Println(errors.Is(err, memkit.ErrOutOfRange))
	// Output:
	// 3 0
	// true
}

func ExampleWithAllocator() {
	// Serve the array from 64-byte aligned storage, e.g. for SIMD kernels.
	a := alloc.NewAligned[float32](alloc.WithAlignment(64))

	arr, err := memkit.New(1024, memkit.WithAllocator[float32](a))
	if err != nil {
		panic(err)
	}
	defer arr.Free()

	arr.Fill(1.5)

	back, _ := arr.Back()
	fmt.Println(*back)
	// Output: 1.5
}

func ExampleOf() {
	arr, err := memkit.Of("a", "b", "c")
	if err != nil {
		panic(err)
	}
	defer arr.Free()

	for i, v := range arr.All() {
		fmt.Println(i, v)
	}
	// Output:
	// 0 a
	// 1 b
	// 2 c
}
