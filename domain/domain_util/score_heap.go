package domain_util

import "container/heap"

type ScoredLabel struct {
	Label string
	Score float64
}

// ScoreMinHeap 最小堆实现 (基于container/heap)，堆顶始终是当前分数最低的元素
type ScoreMinHeap []ScoredLabel

func (h ScoreMinHeap) Len() int            { return len(h) }
func (h ScoreMinHeap) Less(i, j int) bool  { return h[i].Score < h[j].Score }
func (h ScoreMinHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *ScoreMinHeap) Push(x interface{}) { *h = append(*h, x.(ScoredLabel)) }
func (h *ScoreMinHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

// TopKByScore 从候选中取分数最高的k个，按分数从高到低返回
// 用最小堆维护k个元素，候选规模大于k时避免整体排序
func TopKByScore(items []ScoredLabel, k int) []ScoredLabel {
	if k <= 0 || len(items) == 0 {
		return nil
	}

	h := &ScoreMinHeap{}
	heap.Init(h)
	for _, item := range items {
		if h.Len() < k {
			heap.Push(h, item)
			continue
		}
		if item.Score > (*h)[0].Score {
			heap.Pop(h)
			heap.Push(h, item)
		}
	}

	out := make([]ScoredLabel, h.Len())
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(h).(ScoredLabel)
	}
	return out
}
