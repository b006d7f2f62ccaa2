package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/itchyny/gojq"

	"github.com/delta10/wfs-client/internal/config"
	"github.com/delta10/wfs-client/internal/wfs"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	serverSlug := flag.String("server", "", "server entry to query")
	filter := flag.String("filter", "", "jq filter applied to the output, overrides the configured one")
	flag.Parse()

	config, err := config.NewConfig(*configPath)
	if err != nil {
		log.Fatalln(err)
	}

	server, ok := config.Servers[*serverSlug]
	if !ok {
		log.Fatalln("could not find server associated with this slug: " + *serverSlug)
	}

	client, err := wfs.NewClient(server)
	if err != nil {
		log.Fatalln(err)
	}

	capabilities, err := client.GetCapabilities(context.Background())
	if err != nil {
		log.Fatalln(err)
	}

	log.Printf("resolved WFS version %s", client.Version())

	outputFilter := server.Filter
	if *filter != "" {
		outputFilter = *filter
	}

	if outputFilter == "" {
		response, err := json.MarshalIndent(capabilities, "", "    ")
		if err != nil {
			log.Fatalln(err)
		}

		fmt.Fprintln(os.Stdout, string(response))
		return
	}

	query, err := gojq.Parse(outputFilter)
	if err != nil {
		log.Fatalln(err)
	}

	iter := query.Run(capabilities)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := v.(error); ok {
			log.Fatalln(err)
		}

		response, err := json.MarshalIndent(v, "", "    ")
		if err != nil {
			log.Fatalln(err)
		}

		fmt.Fprintln(os.Stdout, string(response))
	}
}
