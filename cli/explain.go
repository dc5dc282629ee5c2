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
	"io"
	"strings"

	"github.com/spf13/cobra"

	"dirpx.dev/refid/apis"
	"dirpx.dev/refid/ident"
)

// RunExplain decomposes an identifier and prints its parts. It works on
// the grammar alone; nothing is resolved.
func RunExplain(cmd *cobra.Command, args []string) error {
	id := args[0]
	out := cmd.OutOrStdout()

	if isMemberID(id) {
		mid, err := ident.ParseMember(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "kind: %s\n", mid.Kind)
		fmt.Fprintf(out, "declaring type: %s\n", mid.DeclaringType)
		if mid.Name != "" {
			fmt.Fprintf(out, "name: %s\n", mid.Name)
		}
		if mid.Kind == apis.KindConstructor {
			binding := "instance"
			if mid.Static {
				binding = "static"
			}
			fmt.Fprintf(out, "binding: %s\n", binding)
		}
		if mid.GenericArity > 0 {
			fmt.Fprintf(out, "generic arity: %d\n", mid.GenericArity)
		}
		if len(mid.GenericArgs) > 0 {
			fmt.Fprintf(out, "generic args: %s\n", strings.Join(mid.GenericArgs, ", "))
		}
		if len(mid.Params) > 0 {
			fmt.Fprintf(out, "params: %s\n", strings.Join(mid.Params, ", "))
		}
		return nil
	}

	explainType(out, id, 0)
	return nil
}

// explainType prints the structural decomposition of a type identifier,
// one wrapper per line.
func explainType(out io.Writer, id string, depth int) {
	indent := strings.Repeat("  ", depth)

	if len(id) > 0 && id[len(id)-1] == ident.ByRefMarker {
		fmt.Fprintf(out, "%sby-ref of:\n", indent)
		explainType(out, id[:len(id)-1], depth+1)
		return
	}
	if elem, rank, ok := ident.ArraySuffix(id); ok {
		fmt.Fprintf(out, "%sarray (rank %d) of:\n", indent, rank)
		explainType(out, elem, depth+1)
		return
	}
	if idx, ok := ident.MethodParamIndex(id); ok {
		fmt.Fprintf(out, "%smethod generic parameter #%d\n", indent, idx)
		return
	}
	if ident.OpenParamRef(id) {
		fmt.Fprintf(out, "%stype generic parameter #%s\n", indent, id[1:])
		return
	}

	base, gargs := ident.SplitGeneric(id)
	if len(gargs) == 0 {
		fmt.Fprintf(out, "%stype: %s\n", indent, base)
		return
	}
	fmt.Fprintf(out, "%sconstructed generic: %s\n", indent, base)
	for _, a := range gargs {
		explainType(out, a, depth+1)
	}
}

// isMemberID reports the <tag>:<decl>:<tail> form: a single-letter head
// before the first separator.
func isMemberID(id string) bool {
	return len(id) > 2 && id[1] == ident.TagSep
}
