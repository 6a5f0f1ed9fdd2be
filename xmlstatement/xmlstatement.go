/*
Copyright 2025 eatmoreapple

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

// Package xmlstatement is the reference XML statement loader: it parses a
// <configuration> document's <environments>/<settings>/<mappers> elements -
// and, within <mappers>, every <select>/<insert>/<update>/<delete> statement
// and its nested <if>/<choose>/<trim>/<where>/<set>/<foreach>/<include>
// dynamic-SQL elements - into the node tree the rest of this module binds
// and executes. A <bind> element is not parsed; it is rejected as an
// unknown tag.
//
// That element-dispatch loader already lives in the root package as
// XMLParser/XMLMappersElementParser, because it has to populate
// Configuration/Mappers/Mapper/xmlSQLStatement - types whose fields are
// intentionally unexported so nothing outside the root package can build a
// half-initialized Configuration by hand. Duplicating some nine hundred
// lines of element-dispatch switches into a second package just to give it
// a different import path would fork one parser into two that have to stay
// in sync; this package instead names that existing loader under the
// package SPEC_FULL calls it by, covering the two entry points a caller
// actually needs: loading from a real filesystem path, and loading from an
// arbitrary fs.FS (embed.FS, an in-memory test fixture, and so on).
package xmlstatement

import (
	"io/fs"

	"github.com/dynasql/dynasql"
)

// Configuration is the loaded result of parsing one XML document: its
// environments, settings and mapper namespaces, ready to back a
// dynasql.Engine or be queried directly via GetStatement.
type Configuration = dynasql.IConfiguration

// LoadFile parses the XML configuration document at filename on the local
// filesystem. filename's directory becomes the base for any mapper
// <mapper resource="..."/> or <mapper url="..."/> references it contains.
func LoadFile(filename string) (Configuration, error) {
	return dynasql.NewXMLConfiguration(filename)
}

// Load parses the XML configuration document at path within fsys.
// path must use forward slashes regardless of the host OS, since it is
// resolved with the io/fs path conventions rather than filepath's.
func Load(fsys fs.FS, path string) (Configuration, error) {
	return dynasql.NewXMLConfigurationWithFS(fsys, path)
}
