package constants_test

import (
	"context"
	"fmt"
	"time"

	"github.com/agentstation/snipdeck/pkg/constants"
)

// Example demonstrates using constants for common operations
func Example() {
	fmt.Printf("Directories use %o permissions\n", constants.DirPermissions)
	fmt.Printf("Files use %o permissions\n", constants.FilePermissions)
	// Output:
	// Directories use 755 permissions
	// Files use 644 permissions
}

// Example_timeouts demonstrates timeout constants
func Example_timeouts() {
	ctx, cancel := context.WithTimeout(context.Background(), constants.LoadTimeout)
	defer cancel()

	deadline, ok := ctx.Deadline()
	fmt.Println("has deadline:", ok)
	fmt.Println("within load timeout:", time.Until(deadline) <= constants.LoadTimeout)
	// Output:
	// has deadline: true
	// within load timeout: true
}

// Example_copyFeedback shows how long a copy outcome stays visible
func Example_copyFeedback() {
	fmt.Printf("Copy feedback: %v\n", constants.CopyFeedbackDuration)
	// Output:
	// Copy feedback: 2s
}
