package api

// indexHTML is the single-page UI. All state lives on the server; the page
// only forwards events and redraws from StateResponse.
const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>QR Code Generator</title>
<style>
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body {
    font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
    min-height: 100vh;
    background: var(--page-bg);
    color: var(--page-text);
    transition: background-color 200ms, color 200ms;
  }
  .container { max-width: 42rem; margin: 0 auto; padding: 4rem 1rem; }
  .card { background: var(--card-bg); border-radius: 1rem; padding: 2rem; box-shadow: 0 20px 25px -5px rgba(0,0,0,.1); }
  h1 { text-align: center; font-size: 1.875rem; margin-bottom: 2rem; }
  input[type=url] {
    width: 100%; padding: .75rem 1rem; border-radius: .5rem;
    border: 1px solid var(--input-border); background: var(--input-bg); color: inherit;
  }
  .row { display: flex; gap: 1rem; margin-top: 1rem; flex-wrap: wrap; }
  input[type=color] { height: 3rem; width: 8rem; cursor: pointer; }
  button { flex: 1; padding: .75rem 1.5rem; border: 0; border-radius: .5rem; font-weight: 500; cursor: pointer; color: inherit; }
  .primary { background: #2563eb; color: #fff; }
  .primary:hover { background: #1d4ed8; }
  .secondary { background: var(--secondary); }
  .secondary:hover { background: var(--secondary-hover); }
  .preview { display: flex; flex-direction: column; align-items: center; gap: 1rem; margin-top: 1.5rem; }
  .preview img { width: 16rem; height: 16rem; padding: 1rem; border-radius: .75rem; background: #fff; }
  .caption { font-size: .875rem; opacity: .75; }
  .placeholder { text-align: center; padding: 4rem; border-radius: .75rem; background: var(--placeholder); opacity: .75; }
  .toggle { position: absolute; top: 1rem; right: 1rem; flex: none; border-radius: 9999px; padding: .5rem .75rem; background: var(--secondary); }
  .toast {
    position: fixed; bottom: 1rem; right: 1rem; background: #22c55e; color: #fff;
    padding: .5rem 1rem; border-radius: .5rem; transition: all 300ms;
    transform: translateY(3rem); opacity: 0;
  }
  .toast.visible { transform: translateY(0); opacity: 1; }
  .hidden { display: none; }
</style>
</head>
<body>
<div id="toast" class="toast"></div>
<button id="theme" class="toggle" type="button"></button>
<div class="container">
  <div class="card">
    <h1>QR Code Generator</h1>
    <input id="url" type="url" placeholder="Enter your URL here">
    <div class="row">
      <input id="color" type="color">
      <button id="generate" class="primary" type="button">Generate QR</button>
    </div>
    <div class="preview">
      <div id="empty" class="placeholder">{{.Placeholder}}</div>
      <img id="code" class="hidden" alt="QR Code">
      <p id="caption" class="caption hidden"></p>
      <div id="actions" class="row hidden" style="width:100%">
        <button id="download" class="secondary" type="button">Download QR</button>
        <button id="copy" class="secondary" type="button">Copy Link</button>
      </div>
    </div>
  </div>
</div>
<script>
(function() {
  var hideTimer = null;
  var el = function(id) { return document.getElementById(id); };

  function render(state) {
    var root = document.documentElement.style;
    root.setProperty('--page-bg', state.style.page_background);
    root.setProperty('--page-text', state.style.page_text);
    root.setProperty('--card-bg', state.style.card_background);
    root.setProperty('--input-bg', state.style.input_background);
    root.setProperty('--input-border', state.style.input_border);
    root.setProperty('--secondary', state.style.secondary_button);
    root.setProperty('--secondary-hover', state.style.secondary_hover);
    root.setProperty('--placeholder', state.style.placeholder_panel);
    el('theme').textContent = state.style.toggle_icon;

    if (document.activeElement !== el('url')) el('url').value = state.source_text;
    el('color').value = state.foreground;

    var has = state.has_artifact;
    el('empty').classList.toggle('hidden', has);
    el('code').classList.toggle('hidden', !has);
    el('caption').classList.toggle('hidden', !has);
    el('actions').classList.toggle('hidden', !has);
    if (has) {
      el('code').src = state.artifact;
      el('caption').textContent = state.caption;
    }

    el('toast').textContent = state.notification || '';
    el('toast').classList.toggle('visible', state.notification_visible);
    if (state.notification_visible) {
      clearTimeout(hideTimer);
      hideTimer = setTimeout(refresh, 2050);
    }
  }

  function call(method, path, body) {
    var opts = { method: method, headers: {} };
    if (body !== undefined) {
      opts.headers['Content-Type'] = 'application/json';
      opts.body = JSON.stringify(body);
    }
    return fetch(path, opts).then(function(r) {
      return r.json().then(function(data) {
        if (!r.ok) throw new Error(data.error || r.statusText);
        return data;
      });
    }).then(render).catch(function(err) { console.error(err); });
  }

  function refresh() { return call('GET', '/api/state'); }

  el('url').addEventListener('input', function(e) { call('PUT', '/api/text', { value: e.target.value }); });
  el('color').addEventListener('input', function(e) { call('PUT', '/api/color', { value: e.target.value }); });
  el('generate').addEventListener('click', function() { call('POST', '/api/generate'); });
  el('copy').addEventListener('click', function() { call('POST', '/api/copy'); });
  el('theme').addEventListener('click', function() { call('POST', '/api/theme'); });
  el('download').addEventListener('click', function() { window.location.href = '/api/download'; });

  render({{.State}});
})();
</script>
</body>
</html>`
