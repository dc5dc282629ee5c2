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
	"github.com/samber/do"
	"github.com/spf13/cobra"

	"dirpx.dev/refid/apis"
	"dirpx.dev/refid/config"
	"dirpx.dev/refid/manifest"
	"dirpx.dev/refid/resolver"
	"dirpx.dev/refid/strategy"
	"dirpx.dev/refid/typesys/model"
)

// newInjector wires the command's services: configuration, the manifest
// universe, and a session over it. Services build lazily, so commands
// that never touch the universe never read the manifest.
func newInjector(cmd *cobra.Command) *do.Injector {
	injector := do.New()

	do.Provide(injector, func(i *do.Injector) (apis.Config, error) {
		path, _ := cmd.Flags().GetString("config")
		if path == "" {
			return config.DefaultConfig(), nil
		}
		return config.LoadFile(path)
	})

	do.Provide(injector, func(i *do.Injector) (*model.Universe, error) {
		path, _ := cmd.Flags().GetString("manifest")
		return manifest.Load(path)
	})

	do.Provide(injector, func(i *do.Injector) (apis.Session, error) {
		cfg, err := do.Invoke[apis.Config](i)
		if err != nil {
			return nil, err
		}
		uni, err := do.Invoke[*model.Universe](i)
		if err != nil {
			return nil, err
		}
		return resolver.New(
			cfg,
			uni,
			strategy.NewExactLookup(),
			strategy.NewScanLookup(),
		), nil
	})

	return injector
}
