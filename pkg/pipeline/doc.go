// Package pipeline builds computational graphs from declarative JSON
// pipeline documents.
//
// # Document format
//
// A document declares named pipelines (one chain each), their sources
// and operation lists, plus the name of the pipeline whose result is the
// run's output:
//
//	{
//	  "pipelines": [
//	    {
//	      "name": "count_words",
//	      "source": {"input": "main_input"},
//	      "operations": [
//	        {"type": "map", "mapper": "split_words"},
//	        {"type": "sort", "keys": ["word"]},
//	        {"type": "reduce", "reducer": "count_group", "keys": ["word"]}
//	      ]
//	    }
//	  ],
//	  "result": "count_words"
//	}
//
// Documents are validated against a JSON schema before anything is
// wired, so shape errors surface with field-level messages instead of
// nil-pointer surprises during a run.
//
// # Callables
//
// Mappers, folders and reducers cannot live in JSON; operations
// reference them by name and Build resolves the names against a
// Registry. DefaultRegistry ships the builtin callables (split_words,
// count_rows, first_of_group, count_group); applications register their
// own on top.
package pipeline
