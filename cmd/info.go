package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/massinglab/gomassing/internal/project"
)

var infoCmd = &cobra.Command{
	Use:   "info [project]",
	Short: "Display information about a project file",
	Long:  "Show site statistics including building count, footprint areas, floor counts and heights without opening the editor.",
	Args:  cobra.ExactArgs(1),
	Run:   runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) {
	filename := args[0]

	file, err := project.Load(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading project file: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Project Information")
	fmt.Println("===================")
	fmt.Printf("File: %s\n", filename)
	fmt.Printf("Format version: %s\n", file.Version)
	if !file.CreatedAt.IsZero() {
		fmt.Printf("Created: %s\n", file.CreatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Println()

	var totalArea, totalGFA float64
	totalFloors := 0
	for _, b := range file.Buildings {
		totalArea += b.Area
		totalFloors += b.Floors
		totalGFA += b.Area * float64(b.Floors)
	}

	fmt.Println("Site Statistics:")
	fmt.Printf("  Buildings: %d\n", len(file.Buildings))
	fmt.Printf("  Footprint Area: %.2f m2\n", totalArea)
	fmt.Printf("  Gross Floor Area: %.2f m2\n", totalGFA)
	fmt.Printf("  Total Floors: %d\n\n", totalFloors)

	if len(file.Buildings) == 0 {
		return
	}

	fmt.Println("Buildings:")
	for _, b := range file.Buildings {
		name := b.Name
		if name == "" {
			name = fmt.Sprintf("Building %d", b.ID)
		}
		fmt.Printf("  %s:\n", name)
		fmt.Printf("    Corners: %d\n", len(b.Points))
		fmt.Printf("    Area: %.2f m2\n", b.Area)
		fmt.Printf("    Floors: %d x %.2f m = %.2f m\n", b.Floors, b.FloorHeight, b.TotalHeight)
		if b.Description != "" {
			fmt.Printf("    Description: %s\n", b.Description)
		}
	}
}
