package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	gojson "github.com/goccy/go-json"

	formstate "github.com/ostrander/formstate"
	"github.com/ostrander/formstate/i18n"
	"github.com/ostrander/formstate/schemafile"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "check":
		os.Exit(checkCmd(os.Args[2:]))
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "formstate CLI\n\nUsage:\n  formstate check -schema schema.yaml -values values.json [-lang en|ja]\n\nRuns whole-form validation of a flat value document against a schema file\nand prints per-field findings. Exits 1 when the form is invalid.")
}

func checkCmd(args []string) int {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	var schemaPath, valuesPath, lang string
	fs.StringVar(&schemaPath, "schema", "", "schema document (.yaml or .json)")
	fs.StringVar(&valuesPath, "values", "", "flat JSON object of path to value")
	fs.StringVar(&lang, "lang", "en", "message language (en/ja)")
	_ = fs.Parse(args)
	if schemaPath == "" || valuesPath == "" {
		fs.Usage()
		return 2
	}
	i18n.SetLanguage(lang)

	schema, err := schemafile.LoadFile(schemaPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "formstate:", err)
		return 2
	}
	raw, err := os.ReadFile(valuesPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "formstate:", err)
		return 2
	}
	var doc map[string]any
	if err := gojson.Unmarshal(raw, &doc); err != nil {
		fmt.Fprintln(os.Stderr, "formstate: decode values:", err)
		return 2
	}

	entries := formstate.PayloadEntries(doc)
	var payload []byte
	form, err := formstate.New(schema, func(ctx context.Context, values map[string]string) error {
		flat := make(map[string]any, len(values))
		for k, v := range values {
			flat[k] = v
		}
		payload, err = formstate.MarshalPayload(flat)
		return err
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "formstate:", err)
		return 2
	}

	ok, err := form.Submit(context.Background(), entries)
	if err != nil {
		fmt.Fprintln(os.Stderr, "formstate:", err)
		return 2
	}
	if ok {
		fmt.Println(color.GreenString("ok"), string(payload))
		return 0
	}
	ferrs, _ := form.FieldErrors()
	for _, fe := range ferrs {
		fmt.Printf("%s %s: %s\n", color.RedString("error"), color.CyanString(fe.Path), fe.Message)
	}
	return 1
}
