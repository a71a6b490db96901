package response_test

import (
	"fmt"

	"github.com/cwbudde/algo-bode/response"
)

func ExampleNew() {
	s, err := response.New("simulation", []response.Point{
		{FrequencyHz: 100, MagnitudeDB: 0, PhaseDeg: 0},
		{FrequencyHz: 1000, MagnitudeDB: -3.01, PhaseDeg: -45},
		{FrequencyHz: 10000, MagnitudeDB: -20.04, PhaseDeg: -84.29},
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(s.Label(), s.Len())
	p := s.At(1)
	fmt.Printf("%.0f Hz: %.2f dB, %.0f deg\n", p.FrequencyHz, p.MagnitudeDB, p.PhaseDeg)
	// Output:
	// simulation 3
	// 1000 Hz: -3.01 dB, -45 deg
}

func ExampleGainDifference() {
	diff, _ := response.New("differential", []response.Point{
		{FrequencyHz: 10, MagnitudeDB: 0},
		{FrequencyHz: 1000, MagnitudeDB: -1},
	})
	cm, _ := response.New("common-mode", []response.Point{
		{FrequencyHz: 10, MagnitudeDB: -80},
		{FrequencyHz: 1000, MagnitudeDB: -61},
	})

	cmrr, err := response.GainDifference("CMRR", diff, cm)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, p := range cmrr.Points() {
		fmt.Printf("%.0f Hz: %.0f dB\n", p.FrequencyHz, p.MagnitudeDB)
	}
	// Output:
	// 10 Hz: 80 dB
	// 1000 Hz: 60 dB
}

func ExampleNormalizePhaseDeg() {
	fmt.Println(response.NormalizePhaseDeg(-270))
	fmt.Println(response.NormalizePhaseDeg(181))
	fmt.Println(response.NormalizePhaseDeg(180))
	// Output:
	// 90
	// -179
	// 180
}
