package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shouni/gemini-reproject-kit/pkg/camera"
	"github.com/shouni/gemini-reproject-kit/pkg/domain"
	"github.com/shouni/gemini-reproject-kit/pkg/prompt"
)

var (
	promptCamera   cameraFlags
	promptJSONFlag bool
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print the instruction sent to the model for a camera pose",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := promptCamera.resolve(cmd)
		if err != nil {
			return err
		}
		out := prompt.Compose(p, domain.DefaultConfig)

		if !promptJSONFlag {
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out.Text)
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Camera domain.CameraParams `json:"camera"`
			prompt.Prompt
			Pose camera.Pose `json:"pose"`
		}{p, out, camera.PoseOf(p)})
	},
}

func init() {
	promptCamera.register(promptCmd)
	promptCmd.Flags().BoolVar(&promptJSONFlag, "json", false, "Print camera, prompt and Cartesian pose as JSON")
}
