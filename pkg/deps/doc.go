// Package deps provides the core dependency model, ecosystem detection,
// project discovery, and manifest aggregation.
//
// # Overview
//
// Licensegate extracts third-party dependencies from local manifest files
// across five ecosystems:
//
//   - Rust (Cargo.lock)
//   - Python (Pipfile.lock, requirements.txt, pyproject.toml)
//   - Java (pom.xml, build.gradle, gradle.lockfile)
//   - Node (package-lock.json, yarn.lock, package.json)
//   - .NET (*.csproj / *.fsproj, packages.config, paket.lock)
//
// This package holds the shared abstractions; each ecosystem has a
// subpackage with its [Analyzer] implementation.
//
// # Architecture
//
// The scan flow has three layers:
//
//  1. Detection ([DetectEcosystems], [DiscoverProjects]): which ecosystems
//     and sub-projects exist under a directory
//  2. Aggregation ([Collect]): run the matching analyzers and merge
//     their output into one deduplicated list
//  3. Classification and policy (packages [spdx] and [policy]): assign
//     risk tiers and verdicts to each record
//
// # Dependency Records
//
// Each discovered package becomes a [Dependency] with identity
// (name, version, ecosystem), optional license strings from the manifest
// or a registry, and the computed [Risk] and [Verdict] fields. The
// verdict is a pure function of the license string and the policy
// config: re-running classification on the same inputs always produces
// the same output.
//
// # Failure Isolation
//
// An analyzer that fails (unreadable or malformed manifest) contributes
// zero dependencies for its ecosystem; the scan continues with the rest.
//
// [spdx]: github.com/matzehuels/licensegate/pkg/spdx
// [policy]: github.com/matzehuels/licensegate/pkg/policy
package deps
