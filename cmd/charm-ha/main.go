package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/danackerson/charm-helpers/pkg/ha"
	"github.com/danackerson/charm-helpers/pkg/hookenv"
	"github.com/danackerson/charm-helpers/pkg/log"
	"github.com/danackerson/charm-helpers/pkg/storage"
)

var (
	// Version information (set via ldflags during build)
	Version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "charm-ha",
	Short: "Generate and publish HA relation data for charms",
	Long: `charm-ha builds cluster HA configuration payloads from a charm
environment snapshot: corosync/pacemaker resource descriptions for
configured VIPs or DNS hostnames, haproxy clone sets, and the groups and
deletions the hacluster peer consumes.

Hook runs can be replayed offline from a YAML snapshot of charm state.`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, _ := cmd.Flags().GetString("log-level")
		jsonOut, _ := cmd.Flags().GetBool("log-json")
		log.Init(log.Config{
			Level:      log.Level(level),
			JSONOutput: jsonOut,
		})
	},
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Emit logs as JSON")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(publishCmd)
	rootCmd.AddCommand(expectCmd)
}

func newGenerator(cmd *cobra.Command, store *storage.Store) (*ha.Generator, *hookenv.FileEnvironment, error) {
	envPath, _ := cmd.Flags().GetString("env")
	env, err := hookenv.LoadFileEnvironment(envPath)
	if err != nil {
		return nil, nil, err
	}

	gen, err := ha.New(ha.Config{
		Environment: env,
		Discovery:   env.Discovery(),
		Store:       store,
	})
	if err != nil {
		return nil, nil, err
	}
	return gen, env, nil
}

func serviceName(cmd *cobra.Command, env *hookenv.FileEnvironment) string {
	service, _ := cmd.Flags().GetString("service")
	if service == "" {
		service = env.CharmName()
	}
	return service
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Build the HA relation payload and print it",
	RunE: func(cmd *cobra.Command, args []string) error {
		gen, env, err := newGenerator(cmd, nil)
		if err != nil {
			return err
		}
		haproxy, _ := cmd.Flags().GetBool("haproxy")

		payload, err := gen.GenerateRelationData(serviceName(cmd, env), haproxy, nil)
		if err != nil {
			return err
		}

		keys := make([]string, 0, len(payload))
		for k := range payload {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("%s=%s\n", k, payload[k])
		}
		return nil
	},
}

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Build the HA relation payload and publish it on a relation",
	Long: `Build the payload and hand it to the relation channel. With a data
directory, the last published payload per relation id is cached and
unchanged payloads skip the write.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		relationID, _ := cmd.Flags().GetString("relation-id")
		dataDir, _ := cmd.Flags().GetString("data-dir")
		haproxy, _ := cmd.Flags().GetBool("haproxy")

		var store *storage.Store
		if dataDir != "" {
			var err error
			store, err = storage.Open(dataDir)
			if err != nil {
				return err
			}
			defer store.Close()
		}

		gen, env, err := newGenerator(cmd, store)
		if err != nil {
			return err
		}
		return gen.PublishRelationData(relationID, serviceName(cmd, env), haproxy, nil)
	},
}

var expectCmd = &cobra.Command{
	Use:   "expect",
	Short: "Report whether the unit should expect an HA relation",
	RunE: func(cmd *cobra.Command, args []string) error {
		gen, _, err := newGenerator(cmd, nil)
		if err != nil {
			return err
		}
		fmt.Println(gen.ExpectHA())
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{generateCmd, publishCmd, expectCmd} {
		cmd.Flags().String("env", "environment.yaml", "Path to the charm environment snapshot")
	}
	for _, cmd := range []*cobra.Command{generateCmd, publishCmd} {
		cmd.Flags().String("service", "", "Service name (defaults to the charm name)")
		cmd.Flags().Bool("haproxy", true, "Include the haproxy clone-set resources")
	}

	publishCmd.Flags().String("relation-id", "ha:0", "Relation id to publish on")
	publishCmd.Flags().String("data-dir", "", "Directory for the published-payload cache")
}
