// Copyright 2025 The Witness Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package gdrive

import (
	"github.com/invopop/jsonschema"
)

const findingSchemaID = "https://witness.dev/schemas/gdrive-finding/v0.1"

// FindingSchema describes the JSON form of a Finding.
func FindingSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}

	schema := reflector.Reflect(&Finding{})
	schema.ID = jsonschema.ID(findingSchemaID)
	schema.Title = "gdrive finding"
	schema.Description = "A secret found in an exported Google Drive document"
	return schema
}
