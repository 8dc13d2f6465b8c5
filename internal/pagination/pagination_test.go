package pagination

import "testing"

func TestPaginate(t *testing.T) {
	items := make([]int, 0, 12)
	for i := 1; i <= 12; i++ {
		items = append(items, i)
	}

	t.Run("middle page", func(t *testing.T) {
		resp := Paginate(items, PageRequest{Page: 2, PageSize: 5})
		if len(resp.Data) != 5 || resp.Data[0] != 6 {
			t.Errorf("unexpected page contents: %v", resp.Data)
		}
		if resp.TotalItems != 12 || resp.TotalPages != 3 {
			t.Errorf("unexpected metadata: %+v", resp)
		}
	})

	t.Run("defaults applied", func(t *testing.T) {
		resp := Paginate(items, PageRequest{})
		if resp.Page != 1 || resp.PageSize != 50 {
			t.Errorf("unexpected defaults: page=%d size=%d", resp.Page, resp.PageSize)
		}
		if len(resp.Data) != 12 {
			t.Errorf("expected all items, got %d", len(resp.Data))
		}
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		resp := Paginate(items, PageRequest{Page: 5, PageSize: 5})
		if len(resp.Data) != 0 {
			t.Errorf("expected empty page, got %v", resp.Data)
		}
		if resp.Data == nil {
			t.Error("expected empty slice, not nil")
		}
	})

	t.Run("partial last page", func(t *testing.T) {
		resp := Paginate(items, PageRequest{Page: 3, PageSize: 5})
		if len(resp.Data) != 2 || resp.Data[1] != 12 {
			t.Errorf("unexpected last page: %v", resp.Data)
		}
	})
}
