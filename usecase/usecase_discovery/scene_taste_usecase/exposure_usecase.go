package scene_taste_usecase

// Gamma 曝光衰减系数，取progress/totalRounds并封顶在maxGamma
// 开局时γ≈0让采样接近均匀，后期γ增大压低已曝光歌曲的权重
// totalRounds非正视作进度走满，负进度按0处理
func Gamma(progress, totalRounds int, maxGamma float64) float64 {
	if totalRounds <= 0 {
		return maxGamma
	}
	if progress < 0 {
		progress = 0
	}

	gamma := float64(progress) / float64(totalRounds)
	if gamma > maxGamma {
		return maxGamma
	}
	return gamma
}
