package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/Pinkwolf12321/lovelace-language/pkg"
)

// Version prints version information.
type Version struct{}

// Run executes the version command.
func (v *Version) Run(ctx context.Context) error {
	name := pkg.Name
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Model != nil {
		name = ktx.Model.Name
	}

	fmt.Printf("%s %s\n", name, strings.TrimSpace(pkg.Version))

	return nil
}
