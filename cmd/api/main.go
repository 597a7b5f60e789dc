// @title Livestock Health API
// @version 1.0
// @description Registro de animales, tratamientos y calendario de dosis diario.
// @BasePath /
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "livestock-health",
	Short: "Livestock treatment records and daily dose scheduling",
	Long: `livestock-health registra animales y tratamientos y resuelve el
calendario diario de dosis de cada tratamiento.

Sin subcomando arranca el servidor HTTP (igual que "serve").`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "archivo YAML de configuración (opcional)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scheduleCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
