// gufunc is a command line tool to inspect gufunc signatures and the shapes generated for them.
//
// Usage:
//
//	gufunc parse "(m,n),(n,p)->(m,p)"
//	gufunc sample "(m,n),(n,p)->(m,p)" -n 5 --max-dims-extra 2
//	gufunc infer "(m,n),(n,p)->(m,p)" 4,2,3 3,5
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed: %+v\n", err)
		klog.Flush()
		os.Exit(1)
	}
	klog.Flush()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "gufunc",
		Short:         "Inspect gufunc signatures and sample shapes for them",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	klogFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(klogFlags)
	rootCmd.PersistentFlags().AddGoFlagSet(klogFlags)
	rootCmd.AddCommand(newParseCmd(), newSampleCmd(), newInferCmd())
	return rootCmd
}
