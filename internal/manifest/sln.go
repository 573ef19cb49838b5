package manifest

// sln.go — solution file emission.
//
// Project GUIDs are derived from the unit name, so regenerating the same
// configuration yields a byte-identical solution file.

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"dotforge/internal/plan"
)

// csharpProjectType is the Visual Studio project-type GUID for C# projects.
const csharpProjectType = "{FAE04EC0-301F-11D3-BF4B-00C04F79EFBC}"

// projectGUID returns a stable GUID for a unit, derived from its name.
func projectGUID(name string) string {
	sum := sha256.Sum256([]byte(name))
	return strings.ToUpper(fmt.Sprintf("{%x-%x-%x-%x-%x}",
		sum[0:4], sum[4:6], sum[6:8], sum[8:10], sum[10:16]))
}

// Sln renders the solution manifest tying every unit together.
func Sln(name string, p *plan.Plan) []byte {
	var sb strings.Builder
	sb.WriteString("Microsoft Visual Studio Solution File, Format Version 12.00\n")
	sb.WriteString("# Visual Studio Version 17\n")

	for _, u := range p.Units {
		path := u.Name + ".csproj"
		if u.Dir != "." {
			path = u.Dir + `\` + path
		}
		// Paths carry backslashes, so quote by hand rather than with %q.
		fmt.Fprintf(&sb, "Project(\"%s\") = \"%s\", \"%s\", \"%s\"\nEndProject\n",
			csharpProjectType, u.Name, path, projectGUID(u.Name))
	}

	sb.WriteString("Global\n")
	sb.WriteString("\tGlobalSection(SolutionConfigurationPlatforms) = preSolution\n")
	sb.WriteString("\t\tDebug|Any CPU = Debug|Any CPU\n")
	sb.WriteString("\t\tRelease|Any CPU = Release|Any CPU\n")
	sb.WriteString("\tEndGlobalSection\n")
	sb.WriteString("\tGlobalSection(ProjectConfigurationPlatforms) = postSolution\n")
	for _, u := range p.Units {
		g := projectGUID(u.Name)
		fmt.Fprintf(&sb, "\t\t%s.Debug|Any CPU.ActiveCfg = Debug|Any CPU\n", g)
		fmt.Fprintf(&sb, "\t\t%s.Debug|Any CPU.Build.0 = Debug|Any CPU\n", g)
		fmt.Fprintf(&sb, "\t\t%s.Release|Any CPU.ActiveCfg = Release|Any CPU\n", g)
		fmt.Fprintf(&sb, "\t\t%s.Release|Any CPU.Build.0 = Release|Any CPU\n", g)
	}
	sb.WriteString("\tEndGlobalSection\n")
	sb.WriteString("EndGlobal\n")
	return []byte(sb.String())
}
