// Command bodecmp overlays Bode-plot data from circuit-simulation and
// bench-measurement exports for visual comparison.
//
// Usage:
//
//	bodecmp plot Simulation_DM.txt SDS3034X_HD_Bode_transfer_DM.csv -o gain.png
//	bodecmp cmrr Simulation_DM.txt Simulation_CM.txt meas_DM.csv meas_CM.csv -o cmrr.png
//	bodecmp stats Simulation_DM.txt measurement.csv
//	bodecmp detect exports/*.csv
package main

import "github.com/cwbudde/algo-bode/cmd/bodecmp/cmd"

func main() {
	cmd.Execute()
}
