package cli

import (
	"encoding/json"
	"fmt"
)

// printJSON renders a command result the way the API layer would return it.
func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
