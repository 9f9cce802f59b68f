// Package source loads chart datasets.
//
// A dataset is a [Document]: an optional title and one [Record] per region.
// Records carry every attribute any chart may need; each chart projects the
// document into the typed structures of package region and fails with a
// MISSING_KEY error naming the region and attribute when one is absent.
//
// # Formats
//
// [File] picks a decoder by extension:
//
//   - .json, .yaml/.yml, .toml: the document shape below
//   - .csv, .xlsx: one row per region with the same keys as column headers
//
// The document shape (JSON shown; YAML and TOML use the same keys):
//
//	{
//	  "titulo": "Densidad poblacional",
//	  "regiones": [
//	    {
//	      "region": "Ñuble", "etiqueta": "Ñuble", "codigo": "XVI",
//	      "area": 13.18, "poblacion": 512289,
//	      "emigrantes": 30505,
//	      "destinos": [{"region": "Metropolitana", "porcentaje": 37.9}],
//	      "nacimientos": {"2009": 6710, "2010": 6602}
//	    }
//	  ]
//	}
//
// In tabular files, columns whose header is a four-digit year form the
// "nacimientos" series and the "destinos" cell is written as
// "Metropolitana:37.9;Biobío:10.8".
//
// Datasets stored in SQL databases are read by package sqlsource.
package source
