/*
Copyright © 2025 The fixgen Authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/evefrontier/fixgen/internal/iomanifest"
	"github.com/evefrontier/fixgen/pkg/fixture"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getStatusCmd returns the status command.
func getStatusCmd() *cobra.Command {
	statusCmd := &cobra.Command{
		Use:   "status <fixture>",
		Short: "Print the current manifest of a fixture",
		Long: `Compute the manifest of a fixture without writing it: release from
<fixture>.release, SHA-256 of the file and row counts of Regions,
Constellations, SolarSystems, Jumps, Planets and Moons.

Examples:
  fixgen status docs/fixtures/minimal_static_data.db`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runStatus(cmd, args[0])
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
	return statusCmd
}

func runStatus(cmd *cobra.Command, fixturePath string) error {
	m, err := iomanifest.New().Fingerprint(context.Background(), fixturePath)
	if err != nil {
		return err
	}
	return printManifest(cmd.OutOrStdout(), m)
}

// getRecordCmd returns the record command.
func getRecordCmd() *cobra.Command {
	recordCmd := &cobra.Command{
		Use:   "record <fixture>",
		Short: "Record the manifest of a fixture",
		Long: `Compute the manifest of a fixture and write it as JSON, by default
to <fixture>.meta.json next to it. Commit the manifest together with
the fixture, 'fixgen verify' checks the fixture against it.

Examples:
  fixgen record docs/fixtures/minimal_static_data.db
  fixgen record route.db -m testdata/route.meta.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runRecord(cmd, args[0])
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
	manifestFlag(recordCmd)
	return recordCmd
}

func runRecord(cmd *cobra.Command, fixturePath string) error {
	path := manifestPath(cmd, fixturePath)
	m, err := iomanifest.New().Record(context.Background(), fixturePath, path)
	if err != nil {
		return err
	}
	gn.Info("Recorded metadata to <em>%s</em>", path)
	return printManifest(cmd.OutOrStdout(), m)
}

// getVerifyCmd returns the verify command.
func getVerifyCmd() *cobra.Command {
	verifyCmd := &cobra.Command{
		Use:   "verify <fixture>",
		Short: "Verify a fixture against its recorded manifest",
		Long: `Recompute the manifest of a fixture and compare it with the recorded
one. When they differ both manifests and every mismatch are printed and
the command exits with status 1.

Examples:
  fixgen verify docs/fixtures/minimal_static_data.db`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runVerify(cmd, args[0])
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
	manifestFlag(verifyCmd)
	return verifyCmd
}

func runVerify(cmd *cobra.Command, fixturePath string) error {
	path := manifestPath(cmd, fixturePath)
	v, err := iomanifest.New().Verify(context.Background(), fixturePath, path)
	if err != nil {
		return err
	}

	if v.Match {
		gn.Info("Fixture metadata verified.")
		return nil
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, "Current fixture metadata does not match recorded metadata.")
	fmt.Fprintln(w, "-- Recorded --")
	if err = printManifest(w, v.Recorded); err != nil {
		return err
	}
	fmt.Fprintln(w, "-- Current --")
	if err = printManifest(w, v.Current); err != nil {
		return err
	}
	fmt.Fprintln(w, "-- Differences --")
	for _, d := range v.Diffs {
		fmt.Fprintf(w, "  %s\n", d)
	}
	return iomanifest.ManifestDriftError(fixturePath, v.Diffs)
}

func printManifest(w io.Writer, m *fixture.Manifest) error {
	data, err := iomanifest.Encode(m)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
