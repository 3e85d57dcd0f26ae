package service

// StatsService computes averages over the marks table. All methods are pure:
// no mutation, no I/O, deterministic for the same input.
type StatsService struct{}

func NewStatsService() *StatsService {
	return &StatsService{}
}

// PerStudentAverages returns the arithmetic mean of each row. An empty table
// yields an empty slice; callers decide how to present "no data".
func (s *StatsService) PerStudentAverages(marks [][]int) []float64 {
	avgs := make([]float64, 0, len(marks))
	for _, row := range marks {
		avgs = append(avgs, mean(row))
	}
	return avgs
}

// PerSubjectAverages returns one mean per column of the marks table. A table
// with zero rows yields an empty slice.
func (s *StatsService) PerSubjectAverages(subjects []string, marks [][]int) []float64 {
	if len(marks) == 0 {
		return []float64{}
	}
	avgs := make([]float64, len(subjects))
	for j := range subjects {
		sum := 0
		for _, row := range marks {
			sum += row[j]
		}
		avgs[j] = float64(sum) / float64(len(marks))
	}
	return avgs
}

func mean(row []int) float64 {
	sum := 0
	for _, v := range row {
		sum += v
	}
	return float64(sum) / float64(len(row))
}
