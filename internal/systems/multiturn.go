package systems

// NextTerm - следующий шаг многоходовой команды.
// После завершённого цикла (prev >= reqTurn) счёт начинается заново.
func NextTerm(prev, reqTurn int) int {
	if prev >= reqTurn || prev < 0 {
		return 1
	}
	return prev + 1
}
