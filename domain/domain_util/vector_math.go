package domain_util

import (
	"errors"
	"fmt"
	"math"
)

// 向量数值原语：余弦相似度与逐元素运算
// 维度不一致属于调用方契约错误，必须立刻失败，不做截断

var (
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
	ErrEmptyInput        = errors.New("empty vector input")
)

// Zeros 返回指定维度的零向量，所有需要默认向量的地方统一走这里
func Zeros(dim int) []float64 {
	return make([]float64, dim)
}

// CosineSimilarity 计算余弦相似度，结果在[-1, 1]
// 任一向量模长为0时方向未定义，约定返回0（不返回错误，也绝不产生NaN）
func CosineSimilarity(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: len(a)=%d len(b)=%d", ErrDimensionMismatch, len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// Add 逐元素相加，返回新切片，不修改输入
func Add(a, b []float64) ([]float64, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: len(a)=%d len(b)=%d", ErrDimensionMismatch, len(a), len(b))
	}

	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] + b[i]
	}
	return out, nil
}

// Scale 逐元素数乘，返回新切片
func Scale(v []float64, k float64) []float64 {
	out := make([]float64, len(v))
	for i := range v {
		out[i] = v[i] * k
	}
	return out
}

// Average 逐元素求平均，所有输入必须同维度
func Average(vectors [][]float64) ([]float64, error) {
	if len(vectors) == 0 {
		return nil, ErrEmptyInput
	}

	dim := len(vectors[0])
	sum := make([]float64, dim)
	for _, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("%w: expected dim %d, got %d", ErrDimensionMismatch, dim, len(v))
		}
		for i := range v {
			sum[i] += v[i]
		}
	}

	return Scale(sum, 1/float64(len(vectors))), nil
}
