// Copyright 2023 uhppoted@twyst.co.za. All rights reserved.
// Use of this source code is governed by an MIT-style license
// that can be found in the LICENSE file.

/*
Package callings-app-sheets maintains a calling progress worksheet from the responses to a calling submission
Google Form.

callings-app-sheets can be used from the command line but is really intended to be run from a scheduled job. Each
sync copies the approved callings that have not yet been recorded to the progress worksheet, records the result in a
log file and mirrors the latest log entry to the last line of a README.

callings-app-sheets supports the following commands:

  - sync, to rebuild the progress worksheet from the form responses
  - get, to download a Google Sheets worksheet as a TSV file
  - put, to replace the contents of a Google Sheets worksheet with a TSV file
  - authorise, to save an OAuth2 token for OAuth2 client credentials
  - version
*/
package sheets
