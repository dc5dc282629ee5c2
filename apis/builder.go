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

package apis

// Builder composes Source and Session from a Config.
// Implementations may migrate state from previous instances (prev*), or ignore them.
type Builder interface {
	// BuildSource constructs a Source for Config. May migrate units from the previous source.
	// ext is an optional extension context. Its meaning is implementation-defined.
	BuildSource(cfg Config, prev Source, ext any) Source
	// BuildSession constructs a Session for Config and Source. A new session starts with
	// empty caches, so a rebuild is also an invalidation point.
	// ext is an optional extension context. Its meaning is implementation-defined.
	BuildSession(cfg Config, src Source, prev Session, ext any) Session
}
