package pipeline

// PadWithMask completa o tensor com linhas zeradas até target linhas. A
// máscara marca com 1 as linhas genuínas e com 0 as de preenchimento.
// Tensores maiores que target são cortados e recebem máscara só de uns.
func PadWithMask(ft FeatureTensor, target int) (FeatureTensor, []float64) {
	out := make(FeatureTensor, target)
	mask := make([]float64, target)

	m := copy(out, ft)
	for i := 0; i < m; i++ {
		mask[i] = 1
	}

	return out, mask
}
