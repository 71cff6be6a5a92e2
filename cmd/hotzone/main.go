// Command hotzone provides headless tooling for resume hot zone
// projects: inspecting them and publishing the static viewer site.
package main

import "resume-hotspots/cmd/hotzone/cmd"

func main() {
	cmd.Execute()
}
