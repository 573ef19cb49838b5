package render

// templates.go — parameterized source templates.
//
// Modern runtimes (net8.0, net6.0) get file-scoped namespaces and implicit
// usings; net48 gets the classic block-namespace shape. Both variants of a
// template take the same data struct.

import "text/template"

var tmpl = template.Must(template.New("render").Parse(`
{{- define "program-modern" -}}
using Microsoft.Extensions.Configuration;
using Microsoft.Extensions.DependencyInjection;
{{- if .RegisterDbContext}}
using Microsoft.EntityFrameworkCore;
using {{.ContextNamespace}};
{{- end}}

namespace {{.Namespace}};

public static class Program
{
{{- if .STAThread}}
    [STAThread]
{{- end}}
    public static void Main()
    {
        var configuration = new ConfigurationBuilder()
            .AddJsonFile("appsettings.json", optional: false)
            .Build();

        var services = new ServiceCollection();
        services.AddSingleton<IConfiguration>(configuration);
{{- if .RegisterDbContext}}
        services.AddDbContext<AppDbContext>(options =>
            options.{{.ProviderCall}}(configuration.GetConnectionString("Default")));
{{- end}}
        ConfigureServices(services);

        using var provider = services.BuildServiceProvider();
        {{.Launch}}
    }

    private static void ConfigureServices(IServiceCollection services)
    {
        // Register application services here.
    }
}
{{end}}

{{- define "program-classic" -}}
using System;
using Microsoft.Extensions.Configuration;
using Microsoft.Extensions.DependencyInjection;
{{- if .RegisterDbContext}}
using Microsoft.EntityFrameworkCore;
using {{.ContextNamespace}};
{{- end}}

namespace {{.Namespace}}
{
    public static class Program
    {
{{- if .STAThread}}
        [STAThread]
{{- end}}
        public static void Main()
        {
            var configuration = new ConfigurationBuilder()
                .AddJsonFile("appsettings.json", optional: false)
                .Build();

            var services = new ServiceCollection();
            services.AddSingleton<IConfiguration>(configuration);
{{- if .RegisterDbContext}}
            services.AddDbContext<AppDbContext>(options =>
                options.{{.ProviderCall}}(configuration.GetConnectionString("Default")));
{{- end}}
            ConfigureServices(services);

            using (var provider = services.BuildServiceProvider())
            {
                {{.Launch}}
            }
        }

        private static void ConfigureServices(IServiceCollection services)
        {
            // Register application services here.
        }
    }
}
{{end}}

{{- define "dbcontext-modern" -}}
using Microsoft.EntityFrameworkCore;

namespace {{.ContextNamespace}};

public class AppDbContext : DbContext
{
{{- if .SelfConfiguring}}
    protected override void OnConfiguring(DbContextOptionsBuilder options)
        => options.{{.ProviderCall}}("{{.ConnectionString}}");
{{- else}}
    public AppDbContext(DbContextOptions<AppDbContext> options) : base(options)
    {
    }
{{- end}}

    // Declare DbSet<TEntity> properties here.
}
{{end}}

{{- define "dbcontext-classic" -}}
using Microsoft.EntityFrameworkCore;

namespace {{.ContextNamespace}}
{
    public class AppDbContext : DbContext
    {
{{- if .SelfConfiguring}}
        protected override void OnConfiguring(DbContextOptionsBuilder options)
        {
            options.{{.ProviderCall}}("{{.ConnectionString}}");
        }
{{- else}}
        public AppDbContext(DbContextOptions<AppDbContext> options) : base(options)
        {
        }
{{- end}}

        // Declare DbSet<TEntity> properties here.
    }
}
{{end}}

{{- define "appsettings" -}}
{
{{- if .HasDatabase}}
  "ConnectionStrings": {
    "Default": "{{.ConnectionString}}"
  },
{{- end}}
  "Logging": {
    "LogLevel": {
      "Default": "Information",
      "Microsoft": "Warning"
    }
  },
  "Generator": {
    "Name": "dotforge",
    "CreatedAt": "{{.CreatedAt}}"
  }
}
{{end}}

{{- define "testclass-modern" -}}
using Xunit;

namespace {{.TestNamespace}};

public class SmokeTests
{
    [Fact]
    public void SolutionBootstraps()
    {
        Assert.True(true);
    }
}
{{end}}

{{- define "testclass-classic" -}}
using Xunit;

namespace {{.TestNamespace}}
{
    public class SmokeTests
    {
        [Fact]
        public void SolutionBootstraps()
        {
            Assert.True(true);
        }
    }
}
{{end}}

{{- define "vscode-tasks" -}}
{
  "version": "2.0.0",
  "tasks": [
    {
      "label": "build",
      "command": "dotnet",
      "type": "process",
      "args": ["build", "${workspaceFolder}/{{.Solution}}"],
      "problemMatcher": "$msCompile",
      "group": {
        "kind": "build",
        "isDefault": true
      }
    },
    {
      "label": "run",
      "command": "dotnet",
      "type": "process",
      "args": ["run", "--project", "${workspaceFolder}/{{.EntryProject}}"],
      "problemMatcher": "$msCompile"
    }
  ]
}
{{end}}

{{- define "vscode-launch" -}}
{
  "version": "0.2.0",
  "configurations": [
    {
      "name": "Launch",
      "type": "{{.DebugType}}",
      "request": "launch",
      "preLaunchTask": "build",
      "program": "{{.EntryBinary}}",
      "cwd": "${workspaceFolder}",
      "console": "internalConsole"
    }
  ]
}
{{end}}

{{- define "gitignore" -}}
bin/
obj/
.vs/
*.user
{{end}}`))
