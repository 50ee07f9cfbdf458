package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/unkn0wn-root/kvcache"
	"github.com/unkn0wn-root/kvcache/codec"
)

var flagDefault string

var getCmd = &cobra.Command{
	Use:   "get KEY...",
	Short: "Print the value cached under KEY",
	Long: "Print the value cached under KEY as JSON. Several KEY arguments form a\n" +
		"composite key. With --default a miss stores and prints that value instead.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var fill func() any
		if cmd.Flags().Changed("default") {
			def := parseValue(flagDefault)
			fill = func() any { return def }
		}
		return withCache(cmd.Context(), func(c *kvcache.Cache[any]) error {
			v, ok, err := c.Read(cmd.Context(), keyArg(args), fill)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.ErrOrStderr(), "miss")
				exitCode = ExitMiss
				return nil
			}
			return printJSON(cmd, v)
		})
	},
}

var setCmd = &cobra.Command{
	Use:   "set KEY... VALUE",
	Short: "Store VALUE under KEY",
	Long: "Store VALUE under KEY. VALUE is parsed as JSON when it is valid JSON and\n" +
		"stored as a plain string otherwise.",
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, raw := args[:len(args)-1], args[len(args)-1]
		return withCache(cmd.Context(), func(c *kvcache.Cache[any]) error {
			return c.Write(cmd.Context(), keyArg(key), parseValue(raw))
		})
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm KEY...",
	Short: "Remove KEY from the cache",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCache(cmd.Context(), func(c *kvcache.Cache[any]) error {
			return c.Remove(cmd.Context(), keyArg(args))
		})
	},
}

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print every entry as a JSON object, oldest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCache(cmd.Context(), func(c *kvcache.Cache[any]) error {
			all := c.ReadAll(nil)
			entries := make([]codec.Entry[any], 0, len(all))
			for _, k := range c.Keys() {
				if v, ok := all[k]; ok {
					entries = append(entries, codec.Entry[any]{Key: k, Value: v})
				}
			}
			b, err := codec.JSON[any]{}.Encode(entries)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		})
	},
}

var sizeCmd = &cobra.Command{
	Use:   "size",
	Short: "Print the number of cached entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCache(cmd.Context(), func(c *kvcache.Cache[any]) error {
			fmt.Fprintln(cmd.OutOrStdout(), c.Size())
			return nil
		})
	},
}

func init() {
	getCmd.Flags().StringVar(&flagDefault, "default", "", "value to store and print on a miss")
}

// keyArg turns positional key arguments into a cache key. A single argument is
// a scalar key; several are a composite key.
func keyArg(args []string) any {
	if len(args) == 1 {
		return args[0]
	}
	return args
}

func parseValue(s string) any {
	if gjson.Valid(s) {
		return gjson.Parse(s).Value()
	}
	return s
}

func printJSON(cmd *cobra.Command, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return nil
}
