package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dgallion1/cragmap/internal/routes"
)

var (
	mappingInput  string
	mappingOutput string

	fillRoutes  string
	fillMapping string
	fillOutput  string

	auditRoutes string
	auditOutput string
)

// mappingCmd converts the block mapping text file
var mappingCmd = &cobra.Command{
	Use:   "mapping",
	Short: "Convert mapping.txt (area / name / blockNumber) into mapping.json",
	RunE: func(cmd *cobra.Command, args []string) error {
		routes.ConvertMappingFile(logger, mappingInput, mappingOutput)
		return nil
	},
}

// fillCmd attaches block numbers to routes
var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Attach block numbers to routes and drop invalid difficulties",
	RunE: func(cmd *cobra.Command, args []string) error {
		routes.FillFiles(logger, fillRoutes, fillMapping, fillOutput)
		return nil
	},
}

// auditCmd lists routes with non-numeric blocks
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "List routes whose block does not start with a digit",
	RunE: func(cmd *cobra.Command, args []string) error {
		routes.AuditFile(logger, auditRoutes, auditOutput)
		return nil
	},
}

func init() {
	routesData := filepath.Join("src", "routes-data")

	mappingCmd.Flags().StringVar(&mappingInput, "input", "mapping.txt", "Mapping text file")
	mappingCmd.Flags().StringVar(&mappingOutput, "output", "mapping.json", "Mapping JSON output")

	fillCmd.Flags().StringVar(&fillRoutes, "routes", filepath.Join(routesData, "routes.json"), "Routes JSON input")
	fillCmd.Flags().StringVar(&fillMapping, "mapping", filepath.Join(routesData, "mapping.json"), "Mapping JSON input")
	fillCmd.Flags().StringVar(&fillOutput, "output", "filled_routes.json", "Filled routes output")

	auditCmd.Flags().StringVar(&auditRoutes, "routes", filepath.Join(routesData, "routes.json"), "Routes JSON input")
	auditCmd.Flags().StringVar(&auditOutput, "output", "routes_fix.json", "Flagged routes output")
}
