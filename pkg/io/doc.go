// Package io provides JSON interchange for abbreviation trees.
//
// The interchange format mirrors the tree structure directly: a document
// is a single node object whose children nest recursively.
//
//	{
//	  "children": [
//	    {
//	      "name": "div",
//	      "attributes": [{"name": "class", "value": "card"}],
//	      "children": [
//	        {"name": "img", "selfClosing": true},
//	        {"value": "caption $1", "textOnly": true}
//	      ]
//	    }
//	  ]
//	}
//
// The top-level object is imported as the synthetic root container: it
// usually carries only "children". Import and export round-trip, so a
// tree written with [WriteJSON] can be read back with [ReadJSON].
package io
