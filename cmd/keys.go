package cmd

import (
	"fmt"

	"github.com/jsphweid/keyplayer/keyboard"
	"github.com/spf13/cobra"
)

var listKeys bool

func init() {
	keysCmd.Flags().BoolVar(&listKeys, "list", false, "print key geometry instead of drawing the keyboard")
	rootCmd.AddCommand(keysCmd)
}

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Shows the keyboard",
	Run: func(cmd *cobra.Command, args []string) {
		keys := keyLayout()
		if !listKeys {
			fmt.Println(keyboard.Render(keys, nil, 4))
			return
		}
		for _, k := range keys {
			fmt.Printf("%-4v %3v black=%-5v left=%7.2f bottom=%6.2f\n", k.Name, k.Pitch, k.Black, k.Left, k.Bottom)
		}
	},
}
