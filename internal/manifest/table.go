// Package manifest materializes the directory tree and build manifests
// for a plan: the solution file, one SDK-style csproj per compilation
// unit wired together along the validated dependency edges, and the
// NuGet package pins selected from the version tables.
//
// Adding a database provider or a runtime means adding table rows here,
// not new branches in the emitters.
package manifest

import "dotforge/internal/axis"

// PackageRef is one pinned NuGet dependency declaration.
type PackageRef struct {
	ID      string
	Version string
}

// providerPackages pins the EF Core provider package per
// (database × runtime). net48 rides the 3.1 LTS line, the last one that
// still targets netstandard2.0.
var providerPackages = map[axis.Database]map[axis.Runtime]PackageRef{
	axis.DatabaseSqlite: {
		axis.RuntimeNet8:  {ID: "Microsoft.EntityFrameworkCore.Sqlite", Version: "8.0.11"},
		axis.RuntimeNet6:  {ID: "Microsoft.EntityFrameworkCore.Sqlite", Version: "6.0.36"},
		axis.RuntimeNet48: {ID: "Microsoft.EntityFrameworkCore.Sqlite", Version: "3.1.32"},
	},
	axis.DatabaseSqlServer: {
		axis.RuntimeNet8:  {ID: "Microsoft.EntityFrameworkCore.SqlServer", Version: "8.0.11"},
		axis.RuntimeNet6:  {ID: "Microsoft.EntityFrameworkCore.SqlServer", Version: "6.0.36"},
		axis.RuntimeNet48: {ID: "Microsoft.EntityFrameworkCore.SqlServer", Version: "3.1.32"},
	},
	axis.DatabasePostgres: {
		axis.RuntimeNet8:  {ID: "Npgsql.EntityFrameworkCore.PostgreSQL", Version: "8.0.11"},
		axis.RuntimeNet6:  {ID: "Npgsql.EntityFrameworkCore.PostgreSQL", Version: "6.0.22"},
		axis.RuntimeNet48: {ID: "Npgsql.EntityFrameworkCore.PostgreSQL", Version: "3.1.18"},
	},
}

// hostPackages pins the DI container and configuration packages that the
// bootstrap wiring consumes, per runtime.
var hostPackages = map[axis.Runtime][]PackageRef{
	axis.RuntimeNet8: {
		{ID: "Microsoft.Extensions.DependencyInjection", Version: "8.0.1"},
		{ID: "Microsoft.Extensions.Configuration.Json", Version: "8.0.1"},
	},
	axis.RuntimeNet6: {
		{ID: "Microsoft.Extensions.DependencyInjection", Version: "6.0.2"},
		{ID: "Microsoft.Extensions.Configuration.Json", Version: "6.0.0"},
	},
	axis.RuntimeNet48: {
		{ID: "Microsoft.Extensions.DependencyInjection", Version: "3.1.32"},
		{ID: "Microsoft.Extensions.Configuration.Json", Version: "3.1.32"},
	},
}

// testPackages is the xUnit tool chain, runtime-independent.
var testPackages = []PackageRef{
	{ID: "Microsoft.NET.Test.Sdk", Version: "17.11.1"},
	{ID: "xunit", Version: "2.9.2"},
	{ID: "xunit.runner.visualstudio", Version: "2.8.2"},
}

// ProviderPackage returns the pinned EF provider package for the
// configuration, and whether one applies at all.
func ProviderPackage(db axis.Database, rt axis.Runtime) (PackageRef, bool) {
	byRuntime, ok := providerPackages[db]
	if !ok {
		return PackageRef{}, false
	}
	ref, ok := byRuntime[rt]
	return ref, ok
}

// TargetFramework returns the TFM for a unit given the runtime and UI
// axes. Desktop toolkits on modern runtimes need the -windows suffix;
// net48 is inherently Windows and takes none.
func TargetFramework(rt axis.Runtime, ui axis.UIKit) string {
	if rt == axis.RuntimeNet48 {
		return string(rt)
	}
	if ui == axis.UIWPF || ui == axis.UIWinForms {
		return string(rt) + "-windows"
	}
	return string(rt)
}
