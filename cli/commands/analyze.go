package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Krulknul/radix-engine-toolkit/manifest"
	"github.com/Krulknul/radix-engine-toolkit/types"
	"github.com/Krulknul/radix-engine-toolkit/worktop"
)

// AnalyzeCmd classifies every instruction of a JSON manifest file.
func AnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Classify each manifest instruction as trusted or untrusted",
		Run:   analyzeManifest,
	}
	addAnalyzeFlags(cmd)
	return cmd
}

func addAnalyzeFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("file", "f", "", "manifest file (json)")
	cmd.MarkFlagRequired("file")
	cmd.Flags().StringP("rules", "r", "", "extra call classification rules (toml)")
	cmd.Flags().Bool("json", false, "print records as json")
	cmd.Flags().Bool("modes", false, "print final tracker modes")
}

type analyzeOutput struct {
	Instructions     []types.TrustedInstructionRecord `json:"instructions"`
	WorktopUntracked bool                             `json:"worktop_untracked"`
	BucketsUntracked bool                             `json:"buckets_untracked"`
}

func analyzeManifest(cmd *cobra.Command, args []string) {
	file, _ := cmd.Flags().GetString("file")
	rules, _ := cmd.Flags().GetString("rules")
	jsonOut, _ := cmd.Flags().GetBool("json")
	showModes, _ := cmd.Flags().GetBool("modes")

	data, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	var m manifest.Manifest
	if err = json.Unmarshal(data, &m); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	classifier := worktop.NewClassifier()
	if rules != "" {
		rs, err := worktop.LoadRuleSet(rules)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if err = classifier.ApplyRuleSet(rs); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	tw := worktop.NewTrustedWorktopWithClassifier(classifier)
	records, err := tw.Run(m.Instructions)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if jsonOut {
		out := analyzeOutput{
			Instructions:     records,
			WorktopUntracked: tw.WorktopUntracked(),
			BucketsUntracked: tw.BucketsUntracked(),
		}
		data, err := json.MarshalIndent(&out, "", "    ")
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(string(data))
		return
	}

	for i, record := range records {
		verdict := "untrusted"
		if record.Trusted {
			verdict = "trusted"
		}
		line := fmt.Sprintf("%4d  %-9s  %s", i, verdict, types.InstructionName(m.Instructions[i]))
		if len(record.Resources) > 0 {
			strs := make([]string, len(record.Resources))
			for j, res := range record.Resources {
				strs[j] = res.String()
			}
			line += "  [" + strings.Join(strs, "; ") + "]"
		}
		fmt.Println(line)
	}
	if showModes {
		fmt.Printf("worktop untracked: %v\n", tw.WorktopUntracked())
		fmt.Printf("buckets untracked: %v\n", tw.BucketsUntracked())
	}
}
