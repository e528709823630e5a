// Package sumo adapts scenario artifacts to the external SUMO-compatible
// simulator: it writes the labeled-fleet and configuration files the
// simulator consumes, invokes the simulator process, and streams the
// tripinfo records it produces.
package sumo

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"

	"tollsweep/core/fleet"
	"tollsweep/internal/errors"
)

type routesDoc struct {
	XMLName xml.Name    `xml:"routes"`
	XMLNS   string      `xml:"xmlns:xsi,attr"`
	Schema  string      `xml:"xsi:noNamespaceSchemaLocation,attr"`
	VTypes  []vTypeElem `xml:"vType"`
	Trips   []tripElem  `xml:"trip"`
}

type vTypeElem struct {
	ID            string      `xml:"id,attr"`
	EmissionClass string      `xml:"emissionClass,attr"`
	Color         string      `xml:"color,attr"`
	Params        []paramElem `xml:"param"`
}

type paramElem struct {
	Key   string `xml:"key,attr"`
	Value string `xml:"value,attr"`
}

type tripElem struct {
	ID     string `xml:"id,attr"`
	Type   string `xml:"type,attr"`
	Depart string `xml:"depart,attr"`
	From   string `xml:"from,attr"`
	To     string `xml:"to,attr"`
}

// WriteArtifact materializes one scenario under dir: the routes file with
// the two type profiles and the labeled fleet, and the simulator
// configuration referencing them. Returns the configuration path.
func WriteArtifact(dir, networkFile string, artifact *fleet.Artifact) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrap(errors.TypeInternal, "creating scenarios directory", err)
	}

	routesPath := filepath.Join(dir, artifact.Toll.RoutesFile())
	if err := writeRoutes(routesPath, artifact); err != nil {
		return "", err
	}

	cfgPath := filepath.Join(dir, artifact.Toll.ConfigFile())
	if err := writeConfig(cfgPath, networkFile, artifact); err != nil {
		return "", err
	}
	return cfgPath, nil
}

func writeRoutes(path string, artifact *fleet.Artifact) error {
	doc := routesDoc{
		XMLNS:  "http://www.w3.org/2001/XMLSchema-instance",
		Schema: "http://sumo.dlr.de/xsd/routes_file.xsd",
	}

	for _, profile := range artifact.Profiles {
		doc.VTypes = append(doc.VTypes, vTypeElem{
			ID:            string(profile.ID),
			EmissionClass: profile.EmissionClass,
			Color:         profile.Color,
			Params: []paramElem{{
				Key:   "device.emissions.probability",
				Value: fmt.Sprintf("%.1f", profile.EmissionsProbability),
			}},
		})
	}

	for _, v := range artifact.Vehicles {
		doc.Trips = append(doc.Trips, tripElem{
			ID:     v.ID,
			Type:   string(v.Type),
			Depart: fmt.Sprintf("%.2f", v.Depart),
			From:   v.From,
			To:     v.To,
		})
	}

	out, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.TypeInternal, "creating routes file", err)
	}
	defer out.Close()

	if _, err := out.WriteString(xml.Header); err != nil {
		return errors.Wrap(errors.TypeInternal, "writing routes file", err)
	}
	enc := xml.NewEncoder(out)
	enc.Indent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(errors.TypeInternal, "encoding routes file", err)
	}
	return enc.Close()
}

const configTemplate = `<?xml version="1.0" encoding="iso-8859-1"?>
<configuration xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xsi:noNamespaceSchemaLocation="http://sumo.sf.net/xsd/sumoConfiguration.xsd">
    <input>
        <net-file value="%s"/>
        <route-files value="%s"/>
    </input>

    <time>
        <begin value="%d"/>
        <end value="%d"/>
        <step-length value="%d"/>
    </time>

    <output>
        <tripinfo-output value="%s"/>
    </output>

    <report>
        <no-step-log value="true"/>
    </report>
</configuration>
`

func writeConfig(path, networkFile string, artifact *fleet.Artifact) error {
	content := fmt.Sprintf(configTemplate,
		networkFile,
		artifact.Toll.RoutesFile(),
		artifact.Window.Begin,
		artifact.Window.End,
		artifact.Window.StepLength,
		artifact.Toll.TripinfoFile(),
	)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return errors.Wrap(errors.TypeInternal, "writing simulator configuration", err)
	}
	return nil
}
