/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package cli

import (
	"fmt"

	"github.com/samber/do"
	"github.com/spf13/cobra"

	"dirpx.dev/refid/typesys/model"
)

// RunUnits lists the manifest universe: each unit with its types.
func RunUnits(cmd *cobra.Command, args []string) error {
	injector := newInjector(cmd)
	uni, err := do.Invoke[*model.Universe](injector)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, u := range uni.Units() {
		types := u.Types()
		fmt.Fprintf(out, "unit %s (%d types)\n", u.Name(), len(types))
		for _, t := range types {
			fmt.Fprintf(out, "  %s\n", t.FullName())
		}
	}
	return nil
}
