// Audiencia - Event Buyer Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/audiencia

/*
Package report turns a selection of event hostnames into the three buyer
reports: geography (city, region, country), age bracket and gender.

Pipeline:

For each report kind the Pipeline builds one runReport query (trailing
365 days, kind-specific dimensions, metric totalUsers, filtered to the
purchase-confirmation page path AND the selected hostnames), sends it through
an analytics.Runner, and normalizes the response into a models.ReportTable.
The three kinds share one code path driven by KindSpec values (CitySpec,
AgeSpec, GenderSpec) that hold the dimension list, column names and row
constructor for each kind.

Empty selections never reach the analytics service: every fetch returns an
empty table with its columns set.

Normalization:

  - Metric values arrive as strings and are parsed as non-negative integers;
    anything else is ErrMalformedResponse.
  - Region, age and gender labels are rewritten through fixed tables so they
    match the map dataset and the Spanish display labels. Unlisted values
    pass through unchanged.
  - Missing dimension values map to an explicit unknown label and are never
    dropped.
  - Row order is preserved.

Errors:

  - ErrUnavailable: the analytics service timed out or could not be reached.
    The table is empty and callers should flag the result as degraded.
  - ErrMalformedResponse: the response broke the expected shape.

CachedPipeline memoizes each kind per sorted hostname set on top of the
cache package; FetchAll runs the three kinds in parallel and joins them.
*/
package report
