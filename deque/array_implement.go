package deque

import (
	"roastsim/model"
)

type ArrDeque struct {
	arr []model.SamplePushData

	// 头部元素下标
	start int
	// 元素个数
	size int
	// 容量
	capacity int
}

var _ Deque = (*ArrDeque)(nil)

// 工厂方法
func NewArrDeque(capacity int) *ArrDeque {
	if capacity < 1 {
		capacity = 1
	}
	return &ArrDeque{
		arr:      make([]model.SamplePushData, capacity),
		capacity: capacity,
	}
}

func (ad *ArrDeque) Size() int {
	return ad.size
}

func (ad *ArrDeque) index(i int) int {
	return (ad.start + i) % ad.capacity
}

func (ad *ArrDeque) Traverse(f func(i int, item model.SamplePushData)) {
	for i := 0; i < ad.size; i++ {
		f(i, ad.arr[ad.index(i)])
	}
}

// 按顺序导出所有元素
func (ad *ArrDeque) Slice() []model.SamplePushData {
	out := make([]model.SamplePushData, 0, ad.size)
	ad.Traverse(func(_ int, item model.SamplePushData) {
		out = append(out, item)
	})
	return out
}

func (ad *ArrDeque) AddLast(item model.SamplePushData) {
	if ad.IsFull() { // 满了淘汰最早的元素
		ad.RemoveFirst()
	}
	ad.arr[ad.index(ad.size)] = item
	ad.size++
}

func (ad *ArrDeque) RemoveFirst() {
	if ad.size == 0 {
		return
	}
	ad.start = ad.index(1)
	ad.size--
}

func (ad *ArrDeque) Clear() {
	ad.start, ad.size = 0, 0
}

func (ad *ArrDeque) IsFull() bool {
	return ad.size == ad.capacity
}
