/**
 *
 * 利用数组实现的定长双端队列（环形缓冲）
 * 用于回放时保存最近的采样点，满了以后从头部淘汰
 *
 */

package deque

import "roastsim/model"

type Deque interface {
	// 队列的长度
	Size() int

	// 正向遍历
	Traverse(f func(i int, item model.SamplePushData))

	// 按顺序导出所有元素
	Slice() []model.SamplePushData

	// 在队列结尾增加一个元素，队列满时淘汰头部元素
	AddLast(item model.SamplePushData)

	// 在队列头部删除一个元素
	RemoveFirst()

	// 清空
	Clear()

	IsFull() bool
}
