package scene_taste_usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGamma(t *testing.T) {
	t.Run("随进度线性增长", func(t *testing.T) {
		assert.InDelta(t, 0.0, Gamma(0, 10, 0.5), 1e-9)
		assert.InDelta(t, 0.3, Gamma(3, 10, 0.5), 1e-9)
		assert.InDelta(t, 0.5, Gamma(5, 10, 0.5), 1e-9)
	})

	t.Run("封顶在maxGamma", func(t *testing.T) {
		assert.InDelta(t, 0.5, Gamma(8, 10, 0.5), 1e-9)
		assert.InDelta(t, 0.5, Gamma(20, 10, 0.5), 1e-9)
	})

	t.Run("总轮数非正时直接取maxGamma", func(t *testing.T) {
		assert.InDelta(t, 0.5, Gamma(3, 0, 0.5), 1e-9)
		assert.InDelta(t, 0.5, Gamma(3, -1, 0.5), 1e-9)
	})

	t.Run("负进度按0处理", func(t *testing.T) {
		assert.InDelta(t, 0.0, Gamma(-4, 10, 0.5), 1e-9)
	})
}
