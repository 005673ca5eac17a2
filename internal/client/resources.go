package client

import "wundercam-cli/internal/catalog"

// Fetch implements catalog.Fetcher: one raw GET returning the body and the
// content type the camera reported.
func (c *WunderClient) Fetch(uri string) ([]byte, string, error) {
	resp, err := c.http.R().Get(uri)
	if err != nil {
		return nil, "", c.classify(uri, err)
	}
	if resp.StatusCode() != 200 {
		return nil, "", &TransferError{URI: uri, Status: resp.StatusCode()}
	}
	return resp.Body(), resp.Header().Get("Content-Type"), nil
}

// Images scans the camera's image directory with the S1 naming presets, so
// burst shots come back grouped into sequences ordered by frame counter.
func (c *WunderClient) Images() (*catalog.Container, error) {
	return catalog.Scan(c, c.fileURI+"Image/", catalog.ScanOptions{
		Pattern: catalog.ImageNamePattern,
		GroupBy: catalog.ImageGroupBy,
		OrderBy: catalog.ImageOrderBy,
	})
}

// Videos scans the camera's video directory with the S1 naming presets.
func (c *WunderClient) Videos() (*catalog.Container, error) {
	return catalog.Scan(c, c.fileURI+"Video/", catalog.ScanOptions{
		Pattern: catalog.VideoNamePattern,
		GroupBy: catalog.VideoGroupBy,
		OrderBy: catalog.VideoOrderBy,
	})
}
