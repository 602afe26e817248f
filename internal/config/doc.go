// Package config loads htmlkit.json, the configuration shared by the
// htmlkit commands.
//
// # Configuration File Structure
//
//	{
//	  "charset": "utf-8",
//	  "attributes": {
//	    "order": ["type", "id", "class", "name", "value"],
//	    "dataPrefixes": ["data", "ng"]
//	  },
//	  "voidElements": ["br", "hr", "img", "input", "link", "meta"],
//	  "minify": true,
//	  "preview": {
//	    "host": "localhost",
//	    "port": 7070
//	  },
//	  "publish": {
//	    "bucket": "my-site",
//	    "prefix": "pages/",
//	    "region": "eu-west-1"
//	  }
//	}
//
// Missing fields take the library defaults. An explicitly empty list, such
// as "order": [], is kept and disables that table.
//
// # Usage
//
//	cfg, err := config.Resolve("", ".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	b := cfg.Builder(nil)
package config
