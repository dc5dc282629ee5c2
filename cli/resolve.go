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
	"errors"
	"fmt"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/do"
	"github.com/spf13/cobra"

	"dirpx.dev/refid/apis"
	"dirpx.dev/refid/typesys/model"
)

// RunResolve resolves an identifier against the manifest universe and
// prints what it found. Near misses get fuzzy suggestions drawn from
// the universe's type names.
func RunResolve(cmd *cobra.Command, args []string) error {
	id := args[0]
	out := cmd.OutOrStdout()

	injector := newInjector(cmd)
	ses, err := do.Invoke[apis.Session](injector)
	if err != nil {
		return err
	}

	if isMemberID(id) {
		m, err := ses.ResolveMember(id)
		if err != nil {
			return reportMiss(cmd, injector, id, err)
		}
		fmt.Fprintf(out, "kind: %s\n", m.MemberKind())
		fmt.Fprintf(out, "declaring type: %s\n", m.Declaring().FullName())
		if name := m.Name(); name != "" {
			fmt.Fprintf(out, "name: %s\n", name)
		}
		if enc, err := ses.EncodeMember(m); err == nil {
			fmt.Fprintf(out, "canonical: %s\n", enc)
		}
		return nil
	}

	t, err := ses.ResolveType(id)
	if err != nil {
		return reportMiss(cmd, injector, id, err)
	}
	fmt.Fprintf(out, "type: %s\n", t.FullName())
	if enc, err := ses.EncodeType(t); err == nil {
		fmt.Fprintf(out, "canonical: %s\n", enc)
	}
	return nil
}

// reportMiss prints fuzzy suggestions for not-found identifiers; other
// errors pass through unchanged.
func reportMiss(cmd *cobra.Command, injector *do.Injector, id string, err error) error {
	if !errors.Is(err, apis.ErrNotFound) {
		return err
	}
	limit, _ := cmd.Flags().GetInt("suggest")
	uni, uerr := do.Invoke[*model.Universe](injector)
	if uerr != nil || limit <= 0 {
		return err
	}

	var names []string
	for _, u := range uni.Units() {
		for _, t := range u.Types() {
			names = append(names, t.FullName())
		}
	}
	ranks := fuzzy.RankFindFold(id, names)
	if len(ranks) == 0 {
		return err
	}
	if len(ranks) > limit {
		ranks = ranks[:limit]
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "not found: %s\n", id)
	for _, r := range ranks {
		fmt.Fprintf(out, "did you mean: %s\n", r.Target)
	}
	return err
}
