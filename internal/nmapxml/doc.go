// Package nmapxml merges nmap XML scan documents and turns them into records.
//
// # Overview
//
// A run usually starts from several scan documents produced by independent
// nmap invocations (-oX). The Merger loads each file into a DocumentResult,
// takes the first document as the base and appends the hosts of every later
// document to it. Failures never abort the merge; they are collected in a
// MergeReport:
//
//   - a later document that cannot be parsed is skipped (DOCUMENT_PARSE)
//   - a base document that cannot be parsed ends the merge with no document
//     (BASE_DOCUMENT); the caller continues with other sources
//
// The Extractor walks the merged document and emits one record.ScanRecord
// per port entry. Hosts without ports produce nothing.
//
// # Usage
//
//	merger := nmapxml.NewMerger(logger)
//	run, report := merger.Merge([]string{"scan1.xml", "scan2.xml"})
//	if run != nil {
//		records := nmapxml.NewExtractor(logger, nil).Extract(run)
//		_ = nmapxml.WriteDocument(run, "out.xml")
//	}
//	for _, f := range report.Failures {
//		log.Printf("skipped %s: %v", f.Path, f.Err)
//	}
//
// # Address selection
//
// A host's record IP is its first address typed "ipv4"; failing that, the
// first address that passes address.IsValid; failing that, "". Invalid
// addresses are logged, never dropped.
package nmapxml
